package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/splitpay-ledger/src/internal/commons"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
	"github.com/api-sage/splitpay-ledger/src/internal/logger"
	"github.com/api-sage/splitpay-ledger/src/internal/usecase/service_interfaces"
)

// Verify that AccountService implements the service_interfaces.AccountService interface
var _ service_interfaces.AccountService = (*AccountService)(nil)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	userRepo    domain.UserRepository
	txRepo      repo_interfaces.TransactionRepository
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	userRepo domain.UserRepository,
	txRepo repo_interfaces.TransactionRepository,
) *AccountService {
	return &AccountService{accountRepo: accountRepo, userRepo: userRepo, txRepo: txRepo}
}

var accountNumberCounter uint32

func (s *AccountService) OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.OpenAccountResponse], error) {
	logger.Info("account service open account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service open account validation failed", err, nil)
		return commons.ErrorResponse[models.OpenAccountResponse]("validation failed", err.Error()), err
	}

	email := strings.TrimSpace(req.Email)
	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		logger.Error("account service open account owner lookup failed", err, logger.Fields{
			"email": email,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.OpenAccountResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.OpenAccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	accountNumber := strings.TrimSpace(req.AccountNumber)
	if accountNumber == "" {
		accountNumber = generateAccountNumber()
	}

	account := domain.Account{
		AccountNumber: accountNumber,
		OwnerEmail:    email,
		Currency:      strings.TrimSpace(req.Currency),
		Balance:       decimal.Zero,
		Status:        domain.AccountStatusActive,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		logger.Error("account service open account repository failed", err, logger.Fields{
			"email": email,
		})
		return commons.ErrorResponse[models.OpenAccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	record := domain.Transaction{
		Timestamp:   req.Timestamp,
		Description: "New account created",
		Type:        domain.TransactionTypeAccountCreated,
		Currency:    created.Currency,
	}
	_ = s.txRepo.AppendForUser(ctx, created.OwnerEmail, record)
	_ = s.txRepo.AppendForAccount(ctx, created.AccountNumber, record)

	logger.Info("account service open account success", logger.Fields{
		"accountNumber": created.AccountNumber,
		"email":         created.OwnerEmail,
		"currency":      created.Currency,
	})

	return commons.SuccessResponse("account opened successfully", mapAccountToResponse(created)), nil
}

func (s *AccountService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.DepositResponse], error) {
	logger.Info("account service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service deposit validation failed", err, nil)
		return commons.ErrorResponse[models.DepositResponse]("validation failed", err.Error()), err
	}

	accountNumber := strings.TrimSpace(req.AccountNumber)
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	if err := s.accountRepo.Credit(ctx, accountNumber, amount); err != nil {
		logger.Error("account service deposit failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.DepositResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.DepositResponse]("failed to deposit funds", "Unable to deposit funds right now"), err
	}

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return commons.ErrorResponse[models.DepositResponse]("failed to deposit funds", "Unable to deposit funds right now"), err
	}

	record := domain.Transaction{
		Timestamp:   req.Timestamp,
		Description: "Funds deposited",
		Type:        domain.TransactionTypeDeposit,
		Currency:    account.Currency,
		Amount:      amount,
	}
	_ = s.txRepo.AppendForUser(ctx, account.OwnerEmail, record)
	_ = s.txRepo.AppendForAccount(ctx, account.AccountNumber, record)

	response := models.DepositResponse{
		AccountNumber: account.AccountNumber,
		Currency:      account.Currency,
		Balance:       account.Balance.StringFixed(2),
	}

	logger.Info("account service deposit success", logger.Fields{
		"accountNumber": account.AccountNumber,
		"balance":       response.Balance,
	})

	return commons.SuccessResponse("funds deposited successfully", response), nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountNumber string) (commons.Response[models.OpenAccountResponse], error) {
	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("account service get account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.OpenAccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.OpenAccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account fetched successfully", mapAccountToResponse(account)), nil
}

func (s *AccountService) Statement(ctx context.Context, email string) (commons.Response[[]models.TransactionResponse], error) {
	logger.Info("account service statement request", logger.Fields{
		"email": email,
	})

	if strings.TrimSpace(email) == "" {
		return commons.ErrorResponse[[]models.TransactionResponse]("validation failed", "email is required"), fmt.Errorf("email is required")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.TransactionResponse]("User not found"), err
		}
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to get statement", "Unable to fetch statement right now"), err
	}

	transactions, err := s.txRepo.ListForUser(ctx, email)
	if err != nil {
		logger.Error("account service statement failed", err, logger.Fields{
			"email": email,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to get statement", "Unable to fetch statement right now"), err
	}

	resp := make([]models.TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		resp = append(resp, mapTransactionToResponse(transaction))
	}

	return commons.SuccessResponse("statement fetched successfully", resp), nil
}

func mapAccountToResponse(account domain.Account) models.OpenAccountResponse {
	return models.OpenAccountResponse{
		AccountNumber: account.AccountNumber,
		Email:         account.OwnerEmail,
		Currency:      account.Currency,
		Balance:       account.Balance.StringFixed(2),
	}
}

func mapTransactionToResponse(transaction domain.Transaction) models.TransactionResponse {
	amounts := make([]string, 0, len(transaction.AmountsForUsers))
	for _, amount := range transaction.AmountsForUsers {
		amounts = append(amounts, amount.StringFixed(2))
	}

	return models.TransactionResponse{
		Timestamp:        transaction.Timestamp,
		Description:      transaction.Description,
		Type:             string(transaction.Type),
		SplitPaymentType: string(transaction.SplitKind),
		Currency:         transaction.Currency,
		Amount:           transaction.Amount.StringFixed(2),
		SenderAccount:    transaction.SenderAccount,
		ReceiverAccount:  transaction.ReceiverAccount,
		InvolvedAccounts: transaction.InvolvedAccounts,
		AmountForUsers:   amounts,
		Error:            transaction.Error,
	}
}

func generateAccountNumber() string {
	now := time.Now().UTC()
	counter := atomic.AddUint32(&accountNumberCounter, 1) % 10000
	return now.Format("20060102") + fmt.Sprintf("%06d%04d", now.Nanosecond()/1000, counter)
}
