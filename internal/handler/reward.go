package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pfell/starboard/internal/family"
	"github.com/pfell/starboard/internal/model"
	"github.com/pfell/starboard/internal/websocket"
)

type RewardHandler struct {
	svc    *family.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewRewardHandler(svc *family.Service, hub *websocket.Hub, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{svc: svc, hub: hub, logger: logger}
}

func (h *RewardHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *RewardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string           `json:"title"`
		Emoji  string           `json:"emoji"`
		Cost   int              `json:"cost"`
		KidIDs []string         `json:"kidIds"`
		Type   model.RewardType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	reward, err := h.svc.CreateReward(r.Context(), family.CreateRewardInput{
		Title:  req.Title,
		Emoji:  req.Emoji,
		Cost:   req.Cost,
		KidIDs: req.KidIDs,
		Type:   req.Type,
	})
	if err != nil {
		h.logger.Error("create reward", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create reward"})
		return
	}
	if reward == nil {
		writeJSON(w, http.StatusOK, map[string]any{"created": false})
		return
	}

	h.broadcast(websocket.NewMessage("reward", "created", reward.ID, nil))
	writeJSON(w, http.StatusCreated, reward)
}

func (h *RewardHandler) Archive(w http.ResponseWriter, r *http.Request) {
	changed, err := h.svc.ArchiveReward(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("archive reward", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to archive reward"})
		return
	}
	if changed {
		h.broadcast(websocket.NewMessage("reward", "archived", r.PathValue("id"), nil))
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KidID string `json:"kidId"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	res, err := h.svc.RedeemReward(r.Context(), r.PathValue("id"), req.KidID)
	if err != nil {
		h.logger.Error("redeem reward", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to redeem reward"})
		return
	}

	if res.Success {
		h.broadcast(websocket.NewMessage("reward", "redeemed", r.PathValue("id"),
			map[string]any{"kidId": req.KidID}))
	}
	writeJSON(w, http.StatusOK, res)
}
