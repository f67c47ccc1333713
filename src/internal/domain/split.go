package domain

import "github.com/shopspring/decimal"

type SplitKind string

const (
	SplitKindEqual  SplitKind = "equal"
	SplitKindCustom SplitKind = "custom"
)

type SplitStatus string

const (
	SplitStatusProposed  SplitStatus = "PROPOSED"
	SplitStatusCommitted SplitStatus = "COMMITTED"
	SplitStatusAborted   SplitStatus = "ABORTED"
)

type DecisionOutcome string

const (
	DecisionUndecided DecisionOutcome = "UNDECIDED"
	DecisionAccepted  DecisionOutcome = "ACCEPTED"
	DecisionRejected  DecisionOutcome = "REJECTED"
)

// SplitRequest is the aggregate root for one multi-party payment division.
// PROPOSED is its only non-terminal status; once COMMITTED or ABORTED it is
// never mutated again.
type SplitRequest struct {
	ID             string
	Amount         decimal.Decimal
	Currency       string
	Kind           SplitKind
	Timestamp      int64
	OriginalShares []decimal.Decimal
	Decisions      []*PendingDecision
	Status         SplitStatus
}

// PendingDecision is one participant's outstanding accept/reject slot.
// Amount is the share converted into the participant account's own currency
// at proposal time; it is never recomputed. Unconvertible marks a share the
// exchange graph could not resolve, which forces an abort at evaluation.
type PendingDecision struct {
	AccountNumber string
	UserEmail     string
	Amount        decimal.Decimal
	Unconvertible bool
	Outcome       DecisionOutcome
	Split         *SplitRequest
}

// InvolvedAccounts returns participant account numbers in proposal order,
// the canonical order for audit records on both commit and abort paths.
func (s *SplitRequest) InvolvedAccounts() []string {
	accounts := make([]string, 0, len(s.Decisions))
	for _, d := range s.Decisions {
		accounts = append(accounts, d.AccountNumber)
	}
	return accounts
}

// AllAccepted reports whether every participant has accepted.
func (s *SplitRequest) AllAccepted() bool {
	for _, d := range s.Decisions {
		if d.Outcome != DecisionAccepted {
			return false
		}
	}
	return true
}
