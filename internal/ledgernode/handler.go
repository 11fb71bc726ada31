package ledgernode

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// OwnerKeyHeader carries the sender's access key on write requests.
const OwnerKeyHeader = "X-Owner-Key"

type UpdateRateRequest struct {
	Rate      string `json:"rate"`
	Timestamp string `json:"timestamp"`
}

type ReceiptResponse struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
	Status      int    `json:"status"`
}

type CurrentRateResponse struct {
	Rate      string `json:"rate"`
	Timestamp string `json:"timestamp"`
}

type EventResponse struct {
	Rate        string `json:"rate"`
	Timestamp   string `json:"timestamp"`
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter exposes the contract over HTTP the way a node would.
func NewRouter(contract *Contract) *chi.Mux {
	h := &handler{contract: contract}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Post("/contract/rate", h.updateRate)
	router.Get("/contract/rate", h.currentRate)
	router.Get("/contract/events", h.listEvents)
	return router
}

type handler struct {
	contract *Contract
}

func (h *handler) updateRate(w http.ResponseWriter, r *http.Request) {
	senderKey := strings.TrimSpace(r.Header.Get(OwnerKeyHeader))
	if senderKey == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing " + OwnerKeyHeader})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req UpdateRateRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rate, ok := new(big.Int).SetString(req.Rate, 10)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rate value"})
		return
	}
	timestamp, ok := new(big.Int).SetString(req.Timestamp, 10)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid timestamp value"})
		return
	}

	receipt, err := h.contract.UpdateRate(senderKey, rate, timestamp)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotOwner):
			writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
		case errors.Is(err, ErrStaleTimestamp):
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		case errors.Is(err, ErrValueOutOfRange):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			logrus.WithError(err).Error("contract write failed")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "contract write failed"})
		}
		return
	}

	logrus.WithFields(logrus.Fields{
		"tx_hash": receipt.TxHash,
		"block":   receipt.BlockNumber,
		"gas":     receipt.GasUsed,
	}).Info("Rate updated")

	writeJSON(w, http.StatusOK, ReceiptResponse{
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
		Status:      receipt.Status,
	})
}

func (h *handler) currentRate(w http.ResponseWriter, r *http.Request) {
	rate, timestamp, ok := h.contract.CurrentRate()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no rate stored"})
		return
	}
	writeJSON(w, http.StatusOK, CurrentRateResponse{
		Rate:      rate.String(),
		Timestamp: timestamp.String(),
	})
}

func (h *handler) listEvents(w http.ResponseWriter, r *http.Request) {
	events := h.contract.Events()
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, EventResponse{
			Rate:        e.Rate.String(),
			Timestamp:   e.Timestamp.String(),
			BlockNumber: e.BlockNumber,
			TxHash:      e.TxHash,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
