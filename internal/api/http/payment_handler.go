package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/kirish34/teketeke/internal/domain"
	"github.com/kirish34/teketeke/internal/service"
)

// PaymentHandler exposes the settlement engine: payment initiation, the
// confirmation callback hit by the payment network, split previews and
// transaction lookups.
type PaymentHandler struct {
	settlement service.SettlementService
	ledger     service.LedgerService
}

func NewPaymentHandler(settlement service.SettlementService, ledger service.LedgerService) *PaymentHandler {
	return &PaymentHandler{settlement: settlement, ledger: ledger}
}

func (h *PaymentHandler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	var req service.InitiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	tx, err := h.settlement.Initiate(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// HandleConfirmation accepts the payment network's callback. The network
// may deliver the same confirmation more than once; every delivery after
// the first settlement is acknowledged without side effects.
func (h *PaymentHandler) HandleConfirmation(w http.ResponseWriter, r *http.Request) {
	var c domain.PaymentConfirmation
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	result, err := h.settlement.Settle(r.Context(), &c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PaymentHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	saccoID := q.Get("sacco_id")
	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid amount"})
		return
	}
	var matatuID *string
	if v := q.Get("matatu_id"); v != "" {
		matatuID = &v
	}
	entries, err := h.settlement.PreviewSplits(r.Context(), saccoID, matatuID, amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *PaymentHandler) HandleGetTransaction(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]
	tx, entries, err := h.ledger.GetTransaction(r.Context(), ref)
	if err != nil {
		writeError(w, err)
		return
	}
	if tx == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "transaction not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transaction": tx,
		"entries":     entries,
	})
}

func (h *PaymentHandler) HandleDailySummary(w http.ResponseWriter, r *http.Request) {
	matatuID := mux.Vars(r)["matatu_id"]
	day := time.Now()
	if v := r.URL.Query().Get("day"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid day, expected yyyy-mm-dd"})
			return
		}
		day = parsed
	}
	summary, err := h.ledger.GetDailySummary(r.Context(), matatuID, day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
