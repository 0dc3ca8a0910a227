package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pfell/starboard/internal/family"
	"github.com/pfell/starboard/internal/websocket"
)

type KidHandler struct {
	svc    *family.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewKidHandler(svc *family.Service, hub *websocket.Hub, logger *slog.Logger) *KidHandler {
	return &KidHandler{svc: svc, hub: hub, logger: logger}
}

func (h *KidHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *KidHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	kid, err := h.svc.AddKid(r.Context(), req.Name, req.Color)
	if err != nil {
		h.logger.Error("add kid", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add kid"})
		return
	}
	if kid == nil {
		writeJSON(w, http.StatusOK, map[string]any{"created": false})
		return
	}

	h.broadcast(websocket.NewMessage("kid", "created", kid.ID, nil))
	writeJSON(w, http.StatusCreated, kid)
}

func (h *KidHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	kidID := r.PathValue("id")
	changed := false
	if req.Name != "" {
		c, err := h.svc.RenameKid(r.Context(), kidID, req.Name)
		if err != nil {
			h.logger.Error("rename kid", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update kid"})
			return
		}
		changed = changed || c
	}
	if req.Color != "" {
		c, err := h.svc.RecolorKid(r.Context(), kidID, req.Color)
		if err != nil {
			h.logger.Error("recolor kid", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update kid"})
			return
		}
		changed = changed || c
	}

	if changed {
		h.broadcast(websocket.NewMessage("kid", "updated", kidID, nil))
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (h *KidHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.svc.Balance(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("balance", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get balance"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"balance": balance})
}

// Progress returns the kid's day tally; query param "day" defaults to today.
func (h *KidHandler) Progress(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Progress(r.Context(), r.PathValue("id"), r.URL.Query().Get("day"))
	if err != nil {
		h.logger.Error("progress", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get progress"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *KidHandler) AdjustStars(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta  int    `json:"delta"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	changed, err := h.svc.AdjustStars(r.Context(), r.PathValue("id"), req.Delta, req.Reason)
	if err != nil {
		h.logger.Error("adjust stars", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to adjust stars"})
		return
	}
	if changed {
		h.broadcast(websocket.NewMessage("kid", "stars_adjusted", r.PathValue("id"),
			map[string]any{"delta": req.Delta}))
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}
