package handler

import (
	"errors"
	"net/http"
	"time"

	"assetrates/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type GetInterestRateResponse struct {
	InterestRate decimal.Decimal `json:"interest_rate"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// GetInterestRate handles GET /api/v1/interest_rate.
//
// @Summary      Get the current average interest rate
// @Description  Returns the current average interest rate stored in the system
// @Tags         assets
// @Produce      json
// @Success      200  {object}  GetInterestRateResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /interest_rate [get]
func (h *Handler) GetInterestRate(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.CurrentRate(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			writeError(w, http.StatusNotFound, "no interest rate found, please update assets first")
			return
		}
		msg := "failed to get current interest rate"
		logrus.WithError(err).WithField("handler", "GetInterestRate").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetInterestRateResponse{
		InterestRate: record.Rate,
		UpdatedAt:    record.UpdatedAt,
	})
}
