package service_interfaces

import (
	"context"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/commons"
)

type RateService interface {
	LoadRates(ctx context.Context) error
	GetRates(ctx context.Context) (commons.Response[[]models.RateResponse], error)
	Convert(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error)
}
