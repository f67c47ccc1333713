package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/commons"
	"github.com/api-sage/splitpay-ledger/src/internal/logger"
)

type SettlementService interface {
	OpenSplit(ctx context.Context, req models.OpenSplitRequest) (commons.Response[models.OpenSplitResponse], error)
	Decide(ctx context.Context, req models.SplitDecisionRequest) (commons.Response[models.SplitDecisionResponse], error)
	GetSplit(ctx context.Context, splitID string) (commons.Response[models.GetSplitResponse], error)
}

type SplitController struct {
	service SettlementService
}

func NewSplitController(service SettlementService) *SplitController {
	return &SplitController{service: service}
}

func (c *SplitController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	open := http.HandlerFunc(c.open)
	decide := http.HandlerFunc(c.decide)
	get := http.HandlerFunc(c.get)
	if authMiddleware != nil {
		open = authMiddleware(open).ServeHTTP
		decide = authMiddleware(decide).ServeHTTP
		get = authMiddleware(get).ServeHTTP
	}

	mux.Handle("/split-payments", http.HandlerFunc(open))
	mux.Handle("/split-payments/decision", http.HandlerFunc(decide))
	mux.Handle("/split-payments/get", http.HandlerFunc(get))
}

func (c *SplitController) open(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.OpenSplitResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.OpenSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.OpenSplitResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.OpenSplit(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := http.StatusInternalServerError
		switch response.Message {
		case "validation failed":
			status = http.StatusBadRequest
		case "Account not found", "User not found":
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *SplitController) decide(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.SplitDecisionResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.SplitDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.SplitDecisionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Decide(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := http.StatusInternalServerError
		switch response.Message {
		case "validation failed":
			status = http.StatusBadRequest
		case "User not found":
			status = http.StatusNotFound
		case "No pending payment for this user", "Split payment already settled":
			status = http.StatusConflict
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *SplitController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[models.GetSplitResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	response, err := c.service.GetSplit(r.Context(), r.URL.Query().Get("splitId"))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := http.StatusInternalServerError
		if response.Message == "Split payment not found" {
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
