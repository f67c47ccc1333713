package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
	"github.com/api-sage/splitpay-ledger/src/internal/exchange"
	"github.com/api-sage/splitpay-ledger/src/internal/usecase/services"
)

func TestLoadRatesSkipsZeroRate(t *testing.T) {
	graph := exchange.NewGraph()
	repo := memory.NewRateRepository([]domain.Rate{
		{ID: 1, FromCurrency: "RON", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.2")},
		{ID: 2, FromCurrency: "RON", ToCurrency: "USD", Rate: decimal.Zero},
	})
	svc := services.NewRateService(repo, graph)

	if err := svc.LoadRates(context.Background()); err != nil {
		t.Fatalf("load rates: %v", err)
	}

	if _, ok := graph.Convert("RON", "EUR", decimal.NewFromInt(10)); !ok {
		t.Fatal("expected RON to EUR to be loaded")
	}
	if _, ok := graph.Convert("RON", "USD", decimal.NewFromInt(10)); ok {
		t.Fatal("expected zero RON to USD rate to be skipped")
	}
}

func TestConvertThroughLoadedRates(t *testing.T) {
	graph := exchange.NewGraph()
	repo := memory.NewRateRepository([]domain.Rate{
		{ID: 1, FromCurrency: "RON", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.2")},
		{ID: 2, FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.RequireFromString("1.1")},
	})
	svc := services.NewRateService(repo, graph)

	if err := svc.LoadRates(context.Background()); err != nil {
		t.Fatalf("load rates: %v", err)
	}

	response, err := svc.Convert(context.Background(), models.ConvertRequest{
		FromCurrency: "RON",
		ToCurrency:   "USD",
		Amount:       "100",
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	// 100 RON to 20 EUR to 22 USD through the chained edges.
	if response.Data.ConvertedAmount != "22" {
		t.Fatalf("expected converted amount 22, got %s", response.Data.ConvertedAmount)
	}
}

func TestConvertCaseSensitiveCurrencyCodes(t *testing.T) {
	graph := exchange.NewGraph()
	repo := memory.NewRateRepository([]domain.Rate{
		{ID: 1, FromCurrency: "RON", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.2")},
	})
	svc := services.NewRateService(repo, graph)

	if err := svc.LoadRates(context.Background()); err != nil {
		t.Fatalf("load rates: %v", err)
	}

	_, err := svc.Convert(context.Background(), models.ConvertRequest{
		FromCurrency: "ron",
		ToCurrency:   "EUR",
		Amount:       "100",
	})
	if err == nil {
		t.Fatal("expected lowercase code to miss the case-sensitive graph")
	}
}
