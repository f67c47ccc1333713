package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/splitpay-ledger/src/internal/commons"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
	"github.com/api-sage/splitpay-ledger/src/internal/exchange"
	"github.com/api-sage/splitpay-ledger/src/internal/logger"
	"github.com/api-sage/splitpay-ledger/src/internal/usecase/service_interfaces"
)

// Verify that TransferService implements the service_interfaces.TransferService interface
var _ service_interfaces.TransferService = (*TransferService)(nil)

// TransferService posts plain account-to-account payments. It shares the
// exchange graph with settlement: the credited amount is whatever the graph
// resolves for the receiver's currency.
type TransferService struct {
	accountRepo repo_interfaces.AccountRepository
	txRepo      repo_interfaces.TransactionRepository
	graph       *exchange.Graph
}

func NewTransferService(
	accountRepo repo_interfaces.AccountRepository,
	txRepo repo_interfaces.TransactionRepository,
	graph *exchange.Graph,
) *TransferService {
	return &TransferService{accountRepo: accountRepo, txRepo: txRepo, graph: graph}
}

func (s *TransferService) SendMoney(ctx context.Context, req models.SendMoneyRequest) (commons.Response[models.SendMoneyResponse], error) {
	logger.Info("transfer service send money request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transfer service send money validation failed", err, nil)
		return commons.ErrorResponse[models.SendMoneyResponse]("validation failed", err.Error()), err
	}

	senderNumber := strings.TrimSpace(req.SenderAccount)
	receiverNumber := strings.TrimSpace(req.ReceiverAccount)
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	sender, err := s.accountRepo.GetByAccountNumber(ctx, senderNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.SendMoneyResponse]("Sender account not found"), err
		}
		return commons.ErrorResponse[models.SendMoneyResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}
	receiver, err := s.accountRepo.GetByAccountNumber(ctx, receiverNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.SendMoneyResponse]("Receiver account not found"), err
		}
		return commons.ErrorResponse[models.SendMoneyResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	creditAmount, ok := s.graph.Convert(sender.Currency, receiver.Currency, amount)
	if !ok {
		err := fmt.Errorf("no conversion path from %s to %s", sender.Currency, receiver.Currency)
		logger.Error("transfer service send money unreachable conversion", err, nil)
		return commons.ErrorResponse[models.SendMoneyResponse]("No conversion path found", err.Error()), err
	}

	if sender.Balance.LessThan(amount) {
		err := domain.ErrInsufficientBalance
		logger.Error("transfer service send money insufficient balance", err, logger.Fields{
			"senderAccount": sender.AccountNumber,
		})
		return commons.ErrorResponse[models.SendMoneyResponse]("Insufficient balance", err.Error()), err
	}

	if err := s.accountRepo.Debit(ctx, sender.AccountNumber, amount); err != nil {
		return commons.ErrorResponse[models.SendMoneyResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}
	if err := s.accountRepo.Credit(ctx, receiver.AccountNumber, creditAmount); err != nil {
		return commons.ErrorResponse[models.SendMoneyResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	description := strings.TrimSpace(req.Description)
	sentRecord := domain.Transaction{
		Timestamp:       req.Timestamp,
		Description:     description,
		Type:            domain.TransactionTypeTransfer,
		Currency:        sender.Currency,
		Amount:          amount,
		SenderAccount:   sender.AccountNumber,
		ReceiverAccount: receiver.AccountNumber,
	}
	receivedRecord := domain.Transaction{
		Timestamp:       req.Timestamp,
		Description:     description,
		Type:            domain.TransactionTypeTransfer,
		Currency:        receiver.Currency,
		Amount:          creditAmount,
		SenderAccount:   sender.AccountNumber,
		ReceiverAccount: receiver.AccountNumber,
	}
	_ = s.txRepo.AppendForUser(ctx, sender.OwnerEmail, sentRecord)
	_ = s.txRepo.AppendForAccount(ctx, sender.AccountNumber, sentRecord)
	_ = s.txRepo.AppendForUser(ctx, receiver.OwnerEmail, receivedRecord)
	_ = s.txRepo.AppendForAccount(ctx, receiver.AccountNumber, receivedRecord)

	response := models.SendMoneyResponse{
		SenderAccount:   sender.AccountNumber,
		ReceiverAccount: receiver.AccountNumber,
		DebitAmount:     amount.StringFixed(2),
		CreditAmount:    creditAmount.StringFixed(2),
		DebitCurrency:   sender.Currency,
		CreditCurrency:  receiver.Currency,
		Description:     description,
		Timestamp:       req.Timestamp,
	}

	logger.Info("transfer service send money success", logger.Fields{
		"senderAccount":   response.SenderAccount,
		"receiverAccount": response.ReceiverAccount,
		"creditAmount":    response.CreditAmount,
	})

	return commons.SuccessResponse("Transaction successful", response), nil
}
