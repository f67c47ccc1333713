package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/splitpay-ledger/src/internal/commons"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
	"github.com/api-sage/splitpay-ledger/src/internal/exchange"
	"github.com/api-sage/splitpay-ledger/src/internal/logger"
	"github.com/api-sage/splitpay-ledger/src/internal/usecase/service_interfaces"
)

// Verify that RateService implements the service_interfaces.RateService interface
var _ service_interfaces.RateService = (*RateService)(nil)

type RateService struct {
	rateRepo repo_interfaces.RateRepository
	graph    *exchange.Graph
}

func NewRateService(rateRepo repo_interfaces.RateRepository, graph *exchange.Graph) *RateService {
	return &RateService{rateRepo: rateRepo, graph: graph}
}

// LoadRates pulls every rate from the repository into the exchange graph.
// A rejected rate (zero) is logged and skipped; the rest keep loading.
func (s *RateService) LoadRates(ctx context.Context) error {
	rates, err := s.rateRepo.GetRates(ctx)
	if err != nil {
		logger.Error("rate service load rates failed", err, nil)
		return fmt.Errorf("load rates: %w", err)
	}

	loaded := 0
	for _, rate := range rates {
		if err := s.graph.AddRate(rate.FromCurrency, rate.ToCurrency, rate.Rate); err != nil {
			logger.Error("rate service skipping rate", err, logger.Fields{
				"fromCurrency": rate.FromCurrency,
				"toCurrency":   rate.ToCurrency,
			})
			continue
		}
		loaded++
	}

	logger.Info("rate service load rates success", logger.Fields{
		"loaded":  loaded,
		"skipped": len(rates) - loaded,
	})
	return nil
}

func (s *RateService) GetRates(ctx context.Context) (commons.Response[[]models.RateResponse], error) {
	logger.Info("rate service get rates request", nil)

	rates, err := s.rateRepo.GetRates(ctx)
	if err != nil {
		logger.Error("rate service get rates failed", err, nil)
		return commons.ErrorResponse[[]models.RateResponse]("failed to get rates", "Unable to fetch rates right now"), err
	}

	resp := make([]models.RateResponse, 0, len(rates))
	for _, rate := range rates {
		resp = append(resp, mapRateToResponse(rate))
	}

	logger.Info("rate service get rates success", logger.Fields{
		"count": len(resp),
	})

	return commons.SuccessResponse("rates fetched successfully", resp), nil
}

func (s *RateService) Convert(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error) {
	logger.Info("rate service convert request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("rate service convert validation failed", err, nil)
		return commons.ErrorResponse[models.ConvertResponse]("validation failed", err.Error()), err
	}

	fromCurrency := strings.TrimSpace(req.FromCurrency)
	toCurrency := strings.TrimSpace(req.ToCurrency)
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	converted, ok := s.graph.Convert(fromCurrency, toCurrency, amount)
	if !ok {
		err := fmt.Errorf("no conversion path from %s to %s", fromCurrency, toCurrency)
		logger.Error("rate service convert unreachable", err, nil)
		return commons.ErrorResponse[models.ConvertResponse]("No conversion path found", err.Error()), err
	}

	response := models.ConvertResponse{
		FromCurrency:    fromCurrency,
		ToCurrency:      toCurrency,
		Amount:          amount.String(),
		ConvertedAmount: converted.String(),
	}

	logger.Info("rate service convert success", logger.Fields{
		"fromCurrency":    fromCurrency,
		"toCurrency":      toCurrency,
		"convertedAmount": response.ConvertedAmount,
	})

	return commons.SuccessResponse("amount converted successfully", response), nil
}

func mapRateToResponse(rate domain.Rate) models.RateResponse {
	return models.RateResponse{
		ID:           rate.ID,
		FromCurrency: rate.FromCurrency,
		ToCurrency:   rate.ToCurrency,
		Rate:         rate.Rate.String(),
		CreatedAt:    rate.CreatedAt.Format(time.RFC3339),
	}
}
