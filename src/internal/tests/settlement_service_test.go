package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
	"github.com/api-sage/splitpay-ledger/src/internal/exchange"
	"github.com/api-sage/splitpay-ledger/src/internal/usecase/services"
)

type settlementFixture struct {
	accountRepo *memory.AccountRepository
	userRepo    *memory.UserRepository
	txRepo      *memory.TransactionRepository
	graph       *exchange.Graph
	service     *services.SettlementService
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()

	f := &settlementFixture{
		accountRepo: memory.NewAccountRepository(),
		userRepo:    memory.NewUserRepository(),
		txRepo:      memory.NewTransactionRepository(),
		graph:       exchange.NewGraph(),
	}
	f.service = services.NewSettlementService(f.accountRepo, f.userRepo, f.txRepo, f.graph)
	return f
}

func (f *settlementFixture) seedParticipant(t *testing.T, email, accountNumber, currency string, balance string) {
	t.Helper()

	if _, err := f.userRepo.Create(context.Background(), domain.User{Email: email, FirstName: "Test", LastName: "User"}); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}

	amount, err := decimal.NewFromString(balance)
	if err != nil {
		t.Fatalf("parse balance %q: %v", balance, err)
	}

	if _, err := f.accountRepo.Create(context.Background(), domain.Account{
		AccountNumber: accountNumber,
		OwnerEmail:    email,
		Currency:      currency,
		Balance:       amount,
	}); err != nil {
		t.Fatalf("seed account %s: %v", accountNumber, err)
	}
}

func (f *settlementFixture) openSplit(t *testing.T, req models.OpenSplitRequest) string {
	t.Helper()

	response, err := f.service.OpenSplit(context.Background(), req)
	if err != nil {
		t.Fatalf("open split: %v", err)
	}
	return response.Data.SplitID
}

func (f *settlementFixture) decide(t *testing.T, email string, accept bool, timestamp int64) models.SplitDecisionResponse {
	t.Helper()

	response, err := f.service.Decide(context.Background(), models.SplitDecisionRequest{
		Email:     email,
		Accept:    accept,
		Timestamp: timestamp,
	})
	if err != nil {
		t.Fatalf("decide for %s: %v", email, err)
	}
	return *response.Data
}

func (f *settlementFixture) balance(t *testing.T, accountNumber string) string {
	t.Helper()

	account, err := f.accountRepo.GetByAccountNumber(context.Background(), accountNumber)
	if err != nil {
		t.Fatalf("get account %s: %v", accountNumber, err)
	}
	return account.Balance.StringFixed(2)
}

func TestSplitPaymentEqualCommit(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedParticipant(t, "ana@example.com", "RO-001", "RON", "100")
	f.seedParticipant(t, "bob@example.com", "RO-002", "RON", "100")
	f.seedParticipant(t, "carol@example.com", "RO-003", "RON", "100")

	f.openSplit(t, models.OpenSplitRequest{
		SplitPaymentType: "equal",
		Currency:         "RON",
		Amount:           "150",
		Accounts:         []string{"RO-001", "RO-002", "RO-003"},
		Timestamp:        10,
	})

	f.decide(t, "ana@example.com", true, 11)
	f.decide(t, "bob@example.com", true, 12)
	last := f.decide(t, "carol@example.com", true, 13)

	if last.Status != string(domain.SplitStatusCommitted) {
		t.Fatalf("expected committed status, got %s", last.Status)
	}

	for _, accountNumber := range []string{"RO-001", "RO-002", "RO-003"} {
		if got := f.balance(t, accountNumber); got != "50.00" {
			t.Fatalf("expected account %s debited to 50.00, got %s", accountNumber, got)
		}
	}

	// Every participant gets the same record, on both timelines, stamped
	// with the proposal time, accounts listed in proposal order.
	wantAccounts := []string{"RO-001", "RO-002", "RO-003"}
	for _, email := range []string{"ana@example.com", "bob@example.com", "carol@example.com"} {
		log, err := f.txRepo.ListForUser(context.Background(), email)
		if err != nil {
			t.Fatalf("list for user %s: %v", email, err)
		}
		if len(log) != 1 {
			t.Fatalf("expected one record for %s, got %d", email, len(log))
		}
		record := log[0]
		if record.Description != "Split payment of 150.00 RON" {
			t.Fatalf("unexpected description %q", record.Description)
		}
		if record.Timestamp != 10 {
			t.Fatalf("expected record stamped with proposal time 10, got %d", record.Timestamp)
		}
		if record.Error != "" {
			t.Fatalf("expected no error on committed record, got %q", record.Error)
		}
		if len(record.InvolvedAccounts) != len(wantAccounts) {
			t.Fatalf("expected %d involved accounts, got %d", len(wantAccounts), len(record.InvolvedAccounts))
		}
		for i, accountNumber := range wantAccounts {
			if record.InvolvedAccounts[i] != accountNumber {
				t.Fatalf("involved accounts out of proposal order: %v", record.InvolvedAccounts)
			}
		}
	}

	for _, accountNumber := range wantAccounts {
		log, err := f.txRepo.ListForAccount(context.Background(), accountNumber)
		if err != nil {
			t.Fatalf("list for account %s: %v", accountNumber, err)
		}
		if len(log) != 1 {
			t.Fatalf("expected one record for account %s, got %d", accountNumber, len(log))
		}
	}
}

func TestSplitPaymentCrossCurrencyDebit(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedParticipant(t, "ana@example.com", "RO-001", "RON", "500")
	f.seedParticipant(t, "eva@example.com", "EU-001", "EUR", "500")

	if err := f.graph.AddRate("RON", "EUR", decimal.RequireFromString("0.2")); err != nil {
		t.Fatalf("add rate: %v", err)
	}

	f.openSplit(t, models.OpenSplitRequest{
		SplitPaymentType: "equal",
		Currency:         "RON",
		Amount:           "100",
		Accounts:         []string{"RO-001", "EU-001"},
		Timestamp:        20,
	})

	f.decide(t, "ana@example.com", true, 21)
	last := f.decide(t, "eva@example.com", true, 22)

	if last.Status != string(domain.SplitStatusCommitted) {
		t.Fatalf("expected committed status, got %s", last.Status)
	}
	if got := f.balance(t, "RO-001"); got != "450.00" {
		t.Fatalf("expected RON account at 450.00, got %s", got)
	}
	// 50 RON at 0.2 is 10 EUR.
	if got := f.balance(t, "EU-001"); got != "490.00" {
		t.Fatalf("expected EUR account at 490.00, got %s", got)
	}
}

func TestSplitPaymentRejectAbortsAndPurges(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedParticipant(t, "ana@example.com", "RO-001", "RON", "100")
	f.seedParticipant(t, "bob@example.com", "RO-002", "RON", "100")
	f.seedParticipant(t, "carol@example.com", "RO-003", "RON", "100")

	f.openSplit(t, models.OpenSplitRequest{
		SplitPaymentType: "equal",
		Currency:         "RON",
		Amount:           "150",
		Accounts:         []string{"RO-001", "RO-002", "RO-003"},
		Timestamp:        30,
	})

	f.decide(t, "ana@example.com", true, 31)
	rejected := f.decide(t, "bob@example.com", false, 32)

	if rejected.Status != string(domain.SplitStatusAborted) {
		t.Fatalf("expected aborted status, got %s", rejected.Status)
	}
	if rejected.Reason != "One user rejected the payment." {
		t.Fatalf("unexpected abort reason %q", rejected.Reason)
	}

	for _, accountNumber := range []string{"RO-001", "RO-002", "RO-003"} {
		if got := f.balance(t, accountNumber); got != "100.00" {
			t.Fatalf("expected account %s untouched at 100.00, got %s", accountNumber, got)
		}
	}

	// Carol never decided; her inbox entry is gone with the settlement.
	_, err := f.service.Decide(context.Background(), models.SplitDecisionRequest{
		Email:     "carol@example.com",
		Accept:    true,
		Timestamp: 33,
	})
	if !errors.Is(err, domain.ErrNoPendingPayment) {
		t.Fatalf("expected ErrNoPendingPayment after purge, got %v", err)
	}

	log, err := f.txRepo.ListForUser(context.Background(), "carol@example.com")
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(log) != 1 || log[0].Error != "One user rejected the payment." {
		t.Fatalf("expected aborted record with rejection reason, got %+v", log)
	}
}

func TestSplitPaymentInsufficientFundsAborts(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedParticipant(t, "ana@example.com", "RO-001", "RON", "10")
	f.seedParticipant(t, "bob@example.com", "RO-002", "RON", "100")

	f.openSplit(t, models.OpenSplitRequest{
		SplitPaymentType: "custom",
		Currency:         "RON",
		Amount:           "80",
		AmountForUsers:   []string{"50", "30"},
		Accounts:         []string{"RO-001", "RO-002"},
		Timestamp:        40,
	})

	f.decide(t, "ana@example.com", true, 41)
	last := f.decide(t, "bob@example.com", true, 42)

	if last.Status != string(domain.SplitStatusAborted) {
		t.Fatalf("expected aborted status, got %s", last.Status)
	}
	want := fmt.Sprintf("Account %s has insufficient funds for a split payment.", "RO-001")
	if last.Reason != want {
		t.Fatalf("expected reason %q, got %q", want, last.Reason)
	}

	if got := f.balance(t, "RO-001"); got != "10.00" {
		t.Fatalf("expected no debit on abort, got %s", got)
	}
	if got := f.balance(t, "RO-002"); got != "100.00" {
		t.Fatalf("expected no debit on abort, got %s", got)
	}
}

func TestSplitPaymentUnconvertibleShareAborts(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedParticipant(t, "ana@example.com", "RO-001", "RON", "100")
	f.seedParticipant(t, "yen@example.com", "JP-001", "JPY", "100000")

	// No RON-JPY path exists, so the JPY share cannot be converted.
	f.openSplit(t, models.OpenSplitRequest{
		SplitPaymentType: "equal",
		Currency:         "RON",
		Amount:           "50",
		Accounts:         []string{"RO-001", "JP-001"},
		Timestamp:        50,
	})

	f.decide(t, "ana@example.com", true, 51)
	last := f.decide(t, "yen@example.com", true, 52)

	if last.Status != string(domain.SplitStatusAborted) {
		t.Fatalf("expected aborted status, got %s", last.Status)
	}
	want := fmt.Sprintf("Account %s share could not be converted for a split payment.", "JP-001")
	if last.Reason != want {
		t.Fatalf("expected reason %q, got %q", want, last.Reason)
	}
	if got := f.balance(t, "JP-001"); got != "100000.00" {
		t.Fatalf("expected no debit on abort, got %s", got)
	}
}

func TestDecideWithEmptyInbox(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedParticipant(t, "ana@example.com", "RO-001", "RON", "100")

	_, err := f.service.Decide(context.Background(), models.SplitDecisionRequest{
		Email:     "ana@example.com",
		Accept:    true,
		Timestamp: 60,
	})
	if !errors.Is(err, domain.ErrNoPendingPayment) {
		t.Fatalf("expected ErrNoPendingPayment, got %v", err)
	}
}

func TestDecideResolvesOldestSplitFirst(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedParticipant(t, "ana@example.com", "RO-001", "RON", "1000")

	first := f.openSplit(t, models.OpenSplitRequest{
		SplitPaymentType: "equal",
		Currency:         "RON",
		Amount:           "100",
		Accounts:         []string{"RO-001"},
		Timestamp:        70,
	})
	second := f.openSplit(t, models.OpenSplitRequest{
		SplitPaymentType: "equal",
		Currency:         "RON",
		Amount:           "200",
		Accounts:         []string{"RO-001"},
		Timestamp:        71,
	})

	got := f.decide(t, "ana@example.com", true, 72)
	if got.SplitID != first {
		t.Fatalf("expected decision to land on oldest split %s, got %s", first, got.SplitID)
	}

	got = f.decide(t, "ana@example.com", true, 73)
	if got.SplitID != second {
		t.Fatalf("expected second decision on split %s, got %s", second, got.SplitID)
	}
}

func TestOpenSplitUnknownAccount(t *testing.T) {
	f := newSettlementFixture(t)
	f.seedParticipant(t, "ana@example.com", "RO-001", "RON", "100")

	response, err := f.service.OpenSplit(context.Background(), models.OpenSplitRequest{
		SplitPaymentType: "equal",
		Currency:         "RON",
		Amount:           "100",
		Accounts:         []string{"RO-001", "RO-404"},
		Timestamp:        80,
	})
	if err == nil {
		t.Fatal("expected error for unknown participant account")
	}
	if response.Message != "Account not found" {
		t.Fatalf("unexpected response message %q", response.Message)
	}

	// The failed proposal left nothing behind: no inbox entry to decide.
	_, err = f.service.Decide(context.Background(), models.SplitDecisionRequest{
		Email:     "ana@example.com",
		Accept:    true,
		Timestamp: 81,
	})
	if !errors.Is(err, domain.ErrNoPendingPayment) {
		t.Fatalf("expected ErrNoPendingPayment, got %v", err)
	}
}
