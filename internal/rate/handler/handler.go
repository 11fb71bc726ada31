package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"assetrates/internal/domain"
)

// RateService is what the HTTP layer needs from the aggregation service.
type RateService interface {
	SubmitAssets(ctx context.Context, assets []domain.Asset) (domain.RateRecord, error)
	CurrentRate(ctx context.Context) (domain.RateRecord, error)
}

type Handler struct {
	service RateService
}

func NewRateHandler(service RateService) *Handler {
	return &Handler{service: service}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, ErrorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
