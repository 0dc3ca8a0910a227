package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pfell/starboard/internal/family"
)

// StateHandler serves the automation surface: a full snapshot of the family
// document for downstream reasoning, and the parent PIN gate.
type StateHandler struct {
	svc    *family.Service
	logger *slog.Logger
}

func NewStateHandler(svc *family.Service, logger *slog.Logger) *StateHandler {
	return &StateHandler{svc: svc, logger: logger}
}

// Snapshot returns kids, chores, completions, rewards, and redemptions in
// one read.
func (h *StateHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load state"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *StateHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	changed, err := h.svc.SetParentPIN(r.Context(), req.PIN)
	if err != nil {
		h.logger.Error("set pin", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set PIN"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (h *StateHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	ok, err := h.svc.VerifyParentPIN(r.Context(), req.PIN)
	if err != nil {
		h.logger.Error("verify pin", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to verify PIN"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": ok})
}
