package cli

import (
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
	"github.com/api-sage/splitpay-ledger/src/internal/exchange"
	"github.com/api-sage/splitpay-ledger/src/internal/usecase/services"
)

// application bundles the assembled services so the serve and run
// subcommands share one wiring path.
type application struct {
	graph             *exchange.Graph
	userRepo          domain.UserRepository
	accountRepo       repo_interfaces.AccountRepository
	txRepo            repo_interfaces.TransactionRepository
	rateService       *services.RateService
	userService       *services.UserService
	accountService    *services.AccountService
	transferService   *services.TransferService
	settlementService *services.SettlementService
}

func newApplication(rateRepo repo_interfaces.RateRepository) *application {
	graph := exchange.NewGraph()
	userRepo := memory.NewUserRepository()
	accountRepo := memory.NewAccountRepository()
	txRepo := memory.NewTransactionRepository()

	return &application{
		graph:             graph,
		userRepo:          userRepo,
		accountRepo:       accountRepo,
		txRepo:            txRepo,
		rateService:       services.NewRateService(rateRepo, graph),
		userService:       services.NewUserService(userRepo),
		accountService:    services.NewAccountService(accountRepo, userRepo, txRepo),
		transferService:   services.NewTransferService(accountRepo, txRepo, graph),
		settlementService: services.NewSettlementService(accountRepo, userRepo, txRepo, graph),
	}
}
