package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kirish34/teketeke/internal/domain"
	"github.com/kirish34/teketeke/internal/service"
)

// AdminHandler covers the provisioning flows: fee policy administration and
// short-code pool management. All routes sit behind AuthMiddleware.
type AdminHandler struct {
	policies service.PolicyService
	codes    service.CodePoolService
}

func NewAdminHandler(policies service.PolicyService, codes service.CodePoolService) *AdminHandler {
	return &AdminHandler{policies: policies, codes: codes}
}

func (h *AdminHandler) HandleGetPolicy(w http.ResponseWriter, r *http.Request) {
	saccoID := mux.Vars(r)["sacco_id"]
	policy, err := h.policies.GetEffective(r.Context(), saccoID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, policy)
}

func (h *AdminHandler) HandleUpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var policy domain.FeePolicy
	if err := json.NewDecoder(r.Body).Decode(&policy); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	policy.SaccoID = mux.Vars(r)["sacco_id"]
	if err := h.policies.Update(r.Context(), &policy); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, policy)
}

type assignCodeRequest struct {
	OwnerType domain.CodeOwnerType `json:"owner_type"`
	OwnerID   string               `json:"owner_id"`
	Code      string               `json:"code,omitempty"` // set for bind-specific
}

func (h *AdminHandler) HandleAssignCode(w http.ResponseWriter, r *http.Request) {
	var req assignCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	code, entry, err := h.codes.AssignNext(r.Context(), req.OwnerType, req.OwnerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"code":  code,
		"entry": entry,
	})
}

func (h *AdminHandler) HandleBindCode(w http.ResponseWriter, r *http.Request) {
	var req assignCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	entry, err := h.codes.BindSpecific(r.Context(), req.OwnerType, req.OwnerID, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *AdminHandler) HandleReleaseCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.codes.Release(r.Context(), code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) HandleListCodes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := h.codes.ListCodes(r.Context(), domain.CodeOwnerType(q.Get("owner_type")), q.Get("owner_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
