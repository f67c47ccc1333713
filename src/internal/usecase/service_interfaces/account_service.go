package service_interfaces

import (
	"context"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/commons"
)

type AccountService interface {
	OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.OpenAccountResponse], error)
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.DepositResponse], error)
	GetAccount(ctx context.Context, accountNumber string) (commons.Response[models.OpenAccountResponse], error)
	Statement(ctx context.Context, email string) (commons.Response[[]models.TransactionResponse], error)
}
