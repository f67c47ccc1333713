package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
	"github.com/api-sage/splitpay-ledger/src/internal/exchange"
	"github.com/api-sage/splitpay-ledger/src/internal/usecase/services"
)

type transferFixture struct {
	accountRepo *memory.AccountRepository
	txRepo      *memory.TransactionRepository
	graph       *exchange.Graph
	service     *services.TransferService
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()

	f := &transferFixture{
		accountRepo: memory.NewAccountRepository(),
		txRepo:      memory.NewTransactionRepository(),
		graph:       exchange.NewGraph(),
	}
	f.service = services.NewTransferService(f.accountRepo, f.txRepo, f.graph)
	return f
}

func (f *transferFixture) seedAccount(t *testing.T, accountNumber, owner, currency, balance string) {
	t.Helper()

	amount, err := decimal.NewFromString(balance)
	if err != nil {
		t.Fatalf("parse balance %q: %v", balance, err)
	}
	if _, err := f.accountRepo.Create(context.Background(), domain.Account{
		AccountNumber: accountNumber,
		OwnerEmail:    owner,
		Currency:      currency,
		Balance:       amount,
	}); err != nil {
		t.Fatalf("seed account %s: %v", accountNumber, err)
	}
}

func TestSendMoneyCrossCurrency(t *testing.T) {
	f := newTransferFixture(t)
	f.seedAccount(t, "RO-001", "ana@example.com", "RON", "200")
	f.seedAccount(t, "EU-001", "eva@example.com", "EUR", "50")

	if err := f.graph.AddRate("RON", "EUR", decimal.RequireFromString("0.2")); err != nil {
		t.Fatalf("add rate: %v", err)
	}

	response, err := f.service.SendMoney(context.Background(), models.SendMoneyRequest{
		SenderAccount:   "RO-001",
		ReceiverAccount: "EU-001",
		Amount:          "100",
		Description:     "rent share",
		Timestamp:       5,
	})
	if err != nil {
		t.Fatalf("send money: %v", err)
	}

	if response.Data.DebitAmount != "100.00" || response.Data.DebitCurrency != "RON" {
		t.Fatalf("unexpected debit %s %s", response.Data.DebitAmount, response.Data.DebitCurrency)
	}
	if response.Data.CreditAmount != "20.00" || response.Data.CreditCurrency != "EUR" {
		t.Fatalf("unexpected credit %s %s", response.Data.CreditAmount, response.Data.CreditCurrency)
	}

	sender, _ := f.accountRepo.GetByAccountNumber(context.Background(), "RO-001")
	receiver, _ := f.accountRepo.GetByAccountNumber(context.Background(), "EU-001")
	if sender.Balance.StringFixed(2) != "100.00" {
		t.Fatalf("expected sender at 100.00, got %s", sender.Balance.StringFixed(2))
	}
	if receiver.Balance.StringFixed(2) != "70.00" {
		t.Fatalf("expected receiver at 70.00, got %s", receiver.Balance.StringFixed(2))
	}

	senderLog, _ := f.txRepo.ListForUser(context.Background(), "ana@example.com")
	receiverLog, _ := f.txRepo.ListForUser(context.Background(), "eva@example.com")
	if len(senderLog) != 1 || senderLog[0].Currency != "RON" {
		t.Fatalf("unexpected sender log %+v", senderLog)
	}
	if len(receiverLog) != 1 || receiverLog[0].Currency != "EUR" {
		t.Fatalf("unexpected receiver log %+v", receiverLog)
	}
}

func TestSendMoneyInsufficientBalance(t *testing.T) {
	f := newTransferFixture(t)
	f.seedAccount(t, "RO-001", "ana@example.com", "RON", "10")
	f.seedAccount(t, "RO-002", "bob@example.com", "RON", "10")

	_, err := f.service.SendMoney(context.Background(), models.SendMoneyRequest{
		SenderAccount:   "RO-001",
		ReceiverAccount: "RO-002",
		Amount:          "50",
		Timestamp:       6,
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	sender, _ := f.accountRepo.GetByAccountNumber(context.Background(), "RO-001")
	if sender.Balance.StringFixed(2) != "10.00" {
		t.Fatalf("expected sender untouched, got %s", sender.Balance.StringFixed(2))
	}
}

func TestSendMoneyNoConversionPath(t *testing.T) {
	f := newTransferFixture(t)
	f.seedAccount(t, "RO-001", "ana@example.com", "RON", "200")
	f.seedAccount(t, "JP-001", "yen@example.com", "JPY", "0")

	response, err := f.service.SendMoney(context.Background(), models.SendMoneyRequest{
		SenderAccount:   "RO-001",
		ReceiverAccount: "JP-001",
		Amount:          "100",
		Timestamp:       7,
	})
	if err == nil {
		t.Fatal("expected error for unreachable currency pair")
	}
	if response.Message != "No conversion path found" {
		t.Fatalf("unexpected message %q", response.Message)
	}
}

func TestSendMoneyValidationRejectsSameAccount(t *testing.T) {
	f := newTransferFixture(t)

	_, err := f.service.SendMoney(context.Background(), models.SendMoneyRequest{
		SenderAccount:   "RO-001",
		ReceiverAccount: "RO-001",
		Amount:          "10",
	})
	if err == nil {
		t.Fatal("expected validation error for identical sender and receiver")
	}
}
