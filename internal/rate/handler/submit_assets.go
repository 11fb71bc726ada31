package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"assetrates/internal/domain"
	"assetrates/internal/rate"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const maxSubmitBodyBytes = 1 << 20

type AssetRequest struct {
	ID           string          `json:"id"`
	InterestRate decimal.Decimal `json:"interest_rate"`
}

type SubmitAssetsResponse struct {
	Message      string          `json:"message"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SubmitAssets handles POST /api/v1/asset.
//
// @Summary      Update assets and calculate the average interest rate
// @Description  Receives a list of assets and stores their average interest rate
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        assets  body      []AssetRequest  true  "Assets with their interest rates"
// @Success      200     {object}  SubmitAssetsResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      409     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /asset [post]
func (h *Handler) SubmitAssets(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req []AssetRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assets := make([]domain.Asset, 0, len(req))
	for _, a := range req {
		assets = append(assets, domain.Asset{ID: a.ID, InterestRate: a.InterestRate})
	}

	record, err := h.service.SubmitAssets(r.Context(), assets)
	if err != nil {
		switch {
		case errors.Is(err, rate.ErrEmptyBatch), errors.Is(err, rate.ErrNegativeRate):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrStaleWrite):
			writeError(w, http.StatusConflict, err.Error())
		default:
			msg := "failed to save average interest rate"
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "SubmitAssets", "assets": len(assets)}).Error(msg)
			writeError(w, http.StatusInternalServerError, msg)
		}
		return
	}

	writeJSON(w, http.StatusOK, SubmitAssetsResponse{
		Message:      "Average interest rate calculated and saved successfully",
		InterestRate: record.Rate,
		UpdatedAt:    record.UpdatedAt,
	})
}
