package stream

import (
	"context"
	"fmt"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/commons"
	"github.com/api-sage/splitpay-ledger/src/internal/logger"
	"github.com/api-sage/splitpay-ledger/src/internal/usecase/service_interfaces"
)

// Runner replays a batch input against the services, one command at a
// time in arrival order. Each command yields exactly one output event,
// and a failing command never stops the stream.
type Runner struct {
	userService       service_interfaces.UserService
	accountService    service_interfaces.AccountService
	transferService   service_interfaces.TransferService
	settlementService service_interfaces.SettlementService
}

func NewRunner(
	userService service_interfaces.UserService,
	accountService service_interfaces.AccountService,
	transferService service_interfaces.TransferService,
	settlementService service_interfaces.SettlementService,
) *Runner {
	return &Runner{
		userService:       userService,
		accountService:    accountService,
		transferService:   transferService,
		settlementService: settlementService,
	}
}

// Seed registers the input's users before any command runs.
func (r *Runner) Seed(ctx context.Context, input Input) error {
	for _, user := range input.Users {
		req := models.CreateUserRequest{
			Email:          user.Email,
			FirstName:      user.FirstName,
			LastName:       user.LastName,
			Occupation:     user.Occupation,
			TransactionPin: user.TransactionPin,
		}
		if _, err := r.userService.CreateUser(ctx, req); err != nil {
			return fmt.Errorf("seed user %s: %w", user.Email, err)
		}
	}
	return nil
}

// Run executes every command and returns one event per command.
func (r *Runner) Run(ctx context.Context, input Input) []Event {
	events := make([]Event, 0, len(input.Commands))

	for _, command := range input.Commands {
		events = append(events, Event{
			Command:   command.Command,
			Timestamp: command.Timestamp,
			Output:    r.dispatch(ctx, command),
		})
	}

	return events
}

func (r *Runner) dispatch(ctx context.Context, command Command) any {
	switch command.Command {
	case "createUser":
		response, _ := r.userService.CreateUser(ctx, models.CreateUserRequest{
			Email:          command.Email,
			FirstName:      command.FirstName,
			LastName:       command.LastName,
			Occupation:     command.Occupation,
			TransactionPin: command.TransactionPin,
		})
		return response

	case "addAccount":
		response, _ := r.accountService.OpenAccount(ctx, models.OpenAccountRequest{
			Email:         command.Email,
			Currency:      command.Currency,
			Timestamp:     command.Timestamp,
			AccountNumber: command.Account,
		})
		return response

	case "addFunds":
		response, _ := r.accountService.Deposit(ctx, models.DepositRequest{
			AccountNumber: command.Account,
			Amount:        command.Amount.String(),
			Timestamp:     command.Timestamp,
		})
		return response

	case "sendMoney":
		response, _ := r.transferService.SendMoney(ctx, models.SendMoneyRequest{
			SenderAccount:   command.Account,
			ReceiverAccount: command.Receiver,
			Amount:          command.Amount.String(),
			Description:     command.Description,
			Timestamp:       command.Timestamp,
		})
		return response

	case "splitPayment":
		shares := make([]string, 0, len(command.AmountForUsers))
		for _, share := range command.AmountForUsers {
			shares = append(shares, share.String())
		}
		response, _ := r.settlementService.OpenSplit(ctx, models.OpenSplitRequest{
			SplitPaymentType: command.SplitPaymentType,
			Currency:         command.Currency,
			Amount:           command.Amount.String(),
			AmountForUsers:   shares,
			Accounts:         command.Accounts,
			Timestamp:        command.Timestamp,
		})
		return response

	case "acceptSplitPayment":
		response, _ := r.settlementService.Decide(ctx, models.SplitDecisionRequest{
			Email:          command.Email,
			Accept:         true,
			TransactionPin: command.TransactionPin,
			Timestamp:      command.Timestamp,
		})
		return response

	case "rejectSplitPayment":
		response, _ := r.settlementService.Decide(ctx, models.SplitDecisionRequest{
			Email:          command.Email,
			Accept:         false,
			TransactionPin: command.TransactionPin,
			Timestamp:      command.Timestamp,
		})
		return response

	case "printTransactions":
		response, _ := r.accountService.Statement(ctx, command.Email)
		return response

	default:
		logger.Error("stream runner unknown command", nil, logger.Fields{
			"command":   command.Command,
			"timestamp": command.Timestamp,
		})
		return commons.ErrorResponse[struct{}](
			"unknown command",
			fmt.Sprintf("command %q is not supported", command.Command),
		)
	}
}
