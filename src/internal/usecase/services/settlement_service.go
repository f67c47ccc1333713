package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/splitpay-ledger/src/internal/commons"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
	"github.com/api-sage/splitpay-ledger/src/internal/exchange"
	"github.com/api-sage/splitpay-ledger/src/internal/logger"
	"github.com/api-sage/splitpay-ledger/src/internal/usecase/service_interfaces"
)

// Verify that SettlementService implements the service_interfaces.SettlementService interface
var _ service_interfaces.SettlementService = (*SettlementService)(nil)

const rejectedReason = "One user rejected the payment."

// SettlementService drives split payments through propose, collect-decisions
// and commit-or-abort. One mutex covers the registry, the per-user inboxes
// and the whole decide path, so two decisions can never both observe a
// not-yet-settled aggregate and settle it twice, and every balance
// check-then-debit sequence runs as a single critical section.
type SettlementService struct {
	mu          sync.Mutex
	accountRepo repo_interfaces.AccountRepository
	userRepo    domain.UserRepository
	txRepo      repo_interfaces.TransactionRepository
	graph       *exchange.Graph
	splits      map[string]*domain.SplitRequest
	inboxes     map[string][]*domain.PendingDecision
	splitSeq    uint64
}

func NewSettlementService(
	accountRepo repo_interfaces.AccountRepository,
	userRepo domain.UserRepository,
	txRepo repo_interfaces.TransactionRepository,
	graph *exchange.Graph,
) *SettlementService {
	return &SettlementService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		txRepo:      txRepo,
		graph:       graph,
		splits:      make(map[string]*domain.SplitRequest),
		inboxes:     make(map[string][]*domain.PendingDecision),
	}
}

// OpenSplit proposes a split payment. Every participant account must resolve
// to a real account and owner before any state is registered; a share whose
// conversion is unreachable still registers, flagged so evaluation aborts
// instead of charging the unconverted amount.
func (s *SettlementService) OpenSplit(ctx context.Context, req models.OpenSplitRequest) (commons.Response[models.OpenSplitResponse], error) {
	logger.Info("settlement service open split request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("settlement service open split validation failed", err, nil)
		return commons.ErrorResponse[models.OpenSplitResponse]("validation failed", err.Error()), err
	}

	kind := domain.SplitKind(strings.TrimSpace(req.SplitPaymentType))
	currency := strings.TrimSpace(req.Currency)
	total, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	shares := make([]decimal.Decimal, len(req.Accounts))
	if kind == domain.SplitKindEqual {
		each := total.Div(decimal.NewFromInt(int64(len(req.Accounts))))
		for i := range shares {
			shares[i] = each
		}
	} else {
		for i, raw := range req.AmountForUsers {
			shares[i], _ = decimal.NewFromString(strings.TrimSpace(raw))
		}
	}

	// Resolve all participants before touching any state; an unknown
	// account or owner abandons the whole proposal.
	accounts := make([]domain.Account, len(req.Accounts))
	for i, accountNumber := range req.Accounts {
		account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
		if err != nil {
			logger.Error("settlement service open split account lookup failed", err, logger.Fields{
				"accountNumber": accountNumber,
			})
			if errors.Is(err, domain.ErrRecordNotFound) {
				return commons.ErrorResponse[models.OpenSplitResponse]("Account not found", fmt.Sprintf("account %s does not exist", accountNumber)), err
			}
			return commons.ErrorResponse[models.OpenSplitResponse]("failed to open split payment", "Unable to open split payment right now"), err
		}
		if _, err := s.userRepo.GetByEmail(ctx, account.OwnerEmail); err != nil {
			logger.Error("settlement service open split owner lookup failed", err, logger.Fields{
				"accountNumber": accountNumber,
			})
			return commons.ErrorResponse[models.OpenSplitResponse]("User not found", fmt.Sprintf("owner of account %s does not exist", accountNumber)), err
		}
		accounts[i] = account
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.splitSeq++
	split := &domain.SplitRequest{
		ID:             fmt.Sprintf("SPLIT-%06d", s.splitSeq),
		Amount:         total,
		Currency:       currency,
		Kind:           kind,
		Timestamp:      req.Timestamp,
		OriginalShares: shares,
		Status:         domain.SplitStatusProposed,
	}

	for i, account := range accounts {
		decision := &domain.PendingDecision{
			AccountNumber: account.AccountNumber,
			UserEmail:     account.OwnerEmail,
			Outcome:       domain.DecisionUndecided,
			Split:         split,
		}
		converted, ok := s.graph.Convert(currency, account.Currency, shares[i])
		if ok {
			decision.Amount = converted
		} else {
			decision.Unconvertible = true
		}
		split.Decisions = append(split.Decisions, decision)
	}

	// Registration is atomic: the aggregate and every inbox entry appear
	// together, after all lookups and conversions are done.
	s.splits[split.ID] = split
	for _, decision := range split.Decisions {
		s.inboxes[decision.UserEmail] = append(s.inboxes[decision.UserEmail], decision)
	}

	logger.Info("settlement service open split success", logger.Fields{
		"splitId":      split.ID,
		"participants": len(split.Decisions),
	})

	response := models.OpenSplitResponse{
		SplitID:  split.ID,
		Status:   string(split.Status),
		Accounts: split.InvolvedAccounts(),
	}
	return commons.SuccessResponse("split payment proposed", response), nil
}

// Decide applies one user's accept or reject to their oldest pending
// decision. Decisions address a user, not a split: a user with several
// outstanding splits always resolves the earliest-opened one first.
func (s *SettlementService) Decide(ctx context.Context, req models.SplitDecisionRequest) (commons.Response[models.SplitDecisionResponse], error) {
	logger.Info("settlement service decide request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("settlement service decide validation failed", err, nil)
		return commons.ErrorResponse[models.SplitDecisionResponse]("validation failed", err.Error()), err
	}

	email := strings.TrimSpace(req.Email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		logger.Error("settlement service decide user lookup failed", err, logger.Fields{
			"email": email,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.SplitDecisionResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.SplitDecisionResponse]("failed to record decision", "Unable to record decision right now"), err
	}

	if pin := strings.TrimSpace(req.TransactionPin); pin != "" && user.TransactionPinHash != "" {
		if err := verifyTransactionPin(user.TransactionPinHash, pin); err != nil {
			logger.Error("settlement service decide pin mismatch", err, logger.Fields{
				"email": email,
			})
			return commons.ErrorResponse[models.SplitDecisionResponse]("validation failed", "transaction pin is incorrect"), err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inbox := s.inboxes[email]
	if len(inbox) == 0 {
		err := domain.ErrNoPendingPayment
		logger.Error("settlement service decide empty inbox", err, logger.Fields{
			"email": email,
		})
		return commons.ErrorResponse[models.SplitDecisionResponse]("No pending payment for this user", err.Error()), err
	}

	decision := inbox[0]
	s.inboxes[email] = inbox[1:]
	split := decision.Split

	if split.Status != domain.SplitStatusProposed {
		// A decision handle on a settled aggregate means purging failed;
		// reject it rather than re-applying the settlement.
		err := domain.ErrSplitSettled
		logger.Error("settlement service decide on settled split", err, logger.Fields{
			"splitId": split.ID,
		})
		return commons.ErrorResponse[models.SplitDecisionResponse]("Split payment already settled", err.Error()), err
	}

	if !req.Accept {
		decision.Outcome = domain.DecisionRejected
		s.settle(ctx, split, domain.SplitStatusAborted, rejectedReason)
		return commons.SuccessResponse("split payment rejected", models.SplitDecisionResponse{
			SplitID: split.ID,
			Status:  string(split.Status),
			Reason:  rejectedReason,
		}), nil
	}

	decision.Outcome = domain.DecisionAccepted
	if !split.AllAccepted() {
		return commons.SuccessResponse("split decision recorded", models.SplitDecisionResponse{
			SplitID: split.ID,
			Status:  string(split.Status),
		}), nil
	}

	// Last acceptance arrived: re-validate every share against the current
	// balance before any money moves.
	if reason := s.evaluate(ctx, split); reason != "" {
		s.settle(ctx, split, domain.SplitStatusAborted, reason)
		return commons.SuccessResponse("split payment aborted", models.SplitDecisionResponse{
			SplitID: split.ID,
			Status:  string(split.Status),
			Reason:  reason,
		}), nil
	}

	s.settle(ctx, split, domain.SplitStatusCommitted, "")
	return commons.SuccessResponse("split payment committed", models.SplitDecisionResponse{
		SplitID: split.ID,
		Status:  string(split.Status),
	}), nil
}

func (s *SettlementService) GetSplit(ctx context.Context, splitID string) (commons.Response[models.GetSplitResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	split, ok := s.splits[strings.TrimSpace(splitID)]
	if !ok {
		err := domain.ErrRecordNotFound
		return commons.ErrorResponse[models.GetSplitResponse]("Split payment not found"), err
	}

	outcomes := make([]string, 0, len(split.Decisions))
	for _, decision := range split.Decisions {
		outcomes = append(outcomes, string(decision.Outcome))
	}

	response := models.GetSplitResponse{
		SplitID:          split.ID,
		Status:           string(split.Status),
		SplitPaymentType: string(split.Kind),
		Currency:         split.Currency,
		Amount:           split.Amount.StringFixed(2),
		Accounts:         split.InvolvedAccounts(),
		Outcomes:         outcomes,
	}
	return commons.SuccessResponse("split payment fetched successfully", response), nil
}

// evaluate runs the all-accepted checks in proposal order and returns the
// abort reason, or "" when every share is convertible and covered.
func (s *SettlementService) evaluate(ctx context.Context, split *domain.SplitRequest) string {
	for _, decision := range split.Decisions {
		if decision.Unconvertible {
			return fmt.Sprintf("Account %s share could not be converted for a split payment.", decision.AccountNumber)
		}
	}

	for _, decision := range split.Decisions {
		account, err := s.accountRepo.GetByAccountNumber(ctx, decision.AccountNumber)
		if err != nil {
			logger.Error("settlement service evaluate account lookup failed", err, logger.Fields{
				"splitId":       split.ID,
				"accountNumber": decision.AccountNumber,
			})
			return fmt.Sprintf("Account %s has insufficient funds for a split payment.", decision.AccountNumber)
		}
		if account.Balance.LessThan(decision.Amount) {
			return fmt.Sprintf("Account %s has insufficient funds for a split payment.", decision.AccountNumber)
		}
	}

	return ""
}

// settle moves the aggregate to its terminal status exactly once: debits on
// commit, never on abort, then one identical audit record fanned out to
// every participant's user timeline and account history, and finally the
// purge of every leftover inbox entry for this aggregate.
func (s *SettlementService) settle(ctx context.Context, split *domain.SplitRequest, status domain.SplitStatus, reason string) {
	split.Status = status

	if status == domain.SplitStatusCommitted {
		// Solvency was just verified for all participants under the same
		// lock, so this debit loop cannot fail part-way.
		for _, decision := range split.Decisions {
			if err := s.accountRepo.Debit(ctx, decision.AccountNumber, decision.Amount); err != nil {
				logger.Error("settlement service commit debit failed", err, logger.Fields{
					"splitId":       split.ID,
					"accountNumber": decision.AccountNumber,
				})
			}
		}
	}

	record := domain.Transaction{
		Timestamp:        split.Timestamp,
		Description:      fmt.Sprintf("Split payment of %s %s", split.Amount.StringFixed(2), split.Currency),
		Type:             domain.TransactionTypeSplitPayment,
		SplitKind:        split.Kind,
		Currency:         split.Currency,
		Amount:           split.Amount,
		InvolvedAccounts: split.InvolvedAccounts(),
		AmountsForUsers:  split.OriginalShares,
		Error:            reason,
	}

	for _, decision := range split.Decisions {
		if err := s.txRepo.AppendForUser(ctx, decision.UserEmail, record); err != nil {
			logger.Error("settlement service append user record failed", err, logger.Fields{
				"splitId": split.ID,
				"email":   decision.UserEmail,
			})
		}
		if err := s.txRepo.AppendForAccount(ctx, decision.AccountNumber, record); err != nil {
			logger.Error("settlement service append account record failed", err, logger.Fields{
				"splitId":       split.ID,
				"accountNumber": decision.AccountNumber,
			})
		}
	}

	s.purge(split)

	logger.Info("settlement service split settled", logger.Fields{
		"splitId": split.ID,
		"status":  string(status),
		"reason":  reason,
	})
}

// purge removes every inbox entry still referencing the aggregate, so
// participants who never got to decide are not left with a dangling entry.
func (s *SettlementService) purge(split *domain.SplitRequest) {
	for _, decision := range split.Decisions {
		inbox := s.inboxes[decision.UserEmail]
		kept := inbox[:0]
		for _, pending := range inbox {
			if pending.Split != split {
				kept = append(kept, pending)
			}
		}
		s.inboxes[decision.UserEmail] = kept
	}
}
