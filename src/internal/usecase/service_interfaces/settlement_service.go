package service_interfaces

import (
	"context"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/commons"
)

type SettlementService interface {
	OpenSplit(ctx context.Context, req models.OpenSplitRequest) (commons.Response[models.OpenSplitResponse], error)
	Decide(ctx context.Context, req models.SplitDecisionRequest) (commons.Response[models.SplitDecisionResponse], error)
	GetSplit(ctx context.Context, splitID string) (commons.Response[models.GetSplitResponse], error)
}
