package service_interfaces

import (
	"context"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/commons"
)

type TransferService interface {
	SendMoney(ctx context.Context, req models.SendMoneyRequest) (commons.Response[models.SendMoneyResponse], error)
}
