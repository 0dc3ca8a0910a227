package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pfell/starboard/internal/family"
	"github.com/pfell/starboard/internal/model"
	"github.com/pfell/starboard/internal/websocket"
)

// ChoreHandler exposes the chore lifecycle operations. Invalid input and
// state conflicts come back as 200 with a zero result, never as errors: the
// kid-facing board treats "nothing happened" as a signal to re-check
// preconditions, not as a failure.
type ChoreHandler struct {
	svc    *family.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewChoreHandler(svc *family.Service, hub *websocket.Hub, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{svc: svc, hub: hub, logger: logger}
}

func (h *ChoreHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type choreRequest struct {
	Title            string          `json:"title"`
	Emoji            string          `json:"emoji"`
	Stars            int             `json:"stars"`
	KidIDs           []string        `json:"kidIds"`
	Type             model.ChoreType `json:"type"`
	ScheduledFor     string          `json:"scheduledFor"`
	Schedule         *model.Schedule `json:"schedule"`
	RequiresApproval bool            `json:"requiresApproval"`
	TimeOfDay        model.TimeOfDay `json:"timeOfDay"`
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	chore, err := h.svc.CreateChore(r.Context(), family.CreateChoreInput{
		Title:            req.Title,
		Emoji:            req.Emoji,
		Stars:            req.Stars,
		KidIDs:           req.KidIDs,
		Type:             req.Type,
		ScheduledFor:     req.ScheduledFor,
		Schedule:         req.Schedule,
		RequiresApproval: req.RequiresApproval,
		TimeOfDay:        req.TimeOfDay,
	})
	if err != nil {
		h.logger.Error("create chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create chore"})
		return
	}
	if chore == nil {
		writeJSON(w, http.StatusOK, map[string]any{"created": false})
		return
	}

	h.broadcast(websocket.NewMessage("chore", "created", chore.ID, nil))
	writeJSON(w, http.StatusCreated, chore)
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title            *string          `json:"title"`
		Emoji            *string          `json:"emoji"`
		Stars            *int             `json:"stars"`
		RequiresApproval *bool            `json:"requiresApproval"`
		TimeOfDay        *model.TimeOfDay `json:"timeOfDay"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	changed, err := h.svc.UpdateChore(r.Context(), r.PathValue("id"), family.UpdateChoreInput{
		Title:            req.Title,
		Emoji:            req.Emoji,
		Stars:            req.Stars,
		RequiresApproval: req.RequiresApproval,
		TimeOfDay:        req.TimeOfDay,
	})
	if err != nil {
		h.logger.Error("update chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update chore"})
		return
	}
	if changed {
		h.broadcast(websocket.NewMessage("chore", "updated", r.PathValue("id"), nil))
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (h *ChoreHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KidID string `json:"kidId"`
		Day   string `json:"day"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	res, err := h.svc.CompleteChore(r.Context(), r.PathValue("id"), req.KidID, req.Day)
	if err != nil {
		h.logger.Error("complete chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to complete chore"})
		return
	}

	if res.Awarded != 0 {
		h.broadcast(websocket.NewMessage("chore", "completed", r.PathValue("id"),
			map[string]any{"kidId": req.KidID, "awarded": res.Awarded}))
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ChoreHandler) UndoComplete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KidID        string `json:"kidId"`
		Day          string `json:"day"`
		CompletionID string `json:"completionId"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	res, err := h.svc.UndoCompletion(r.Context(), r.PathValue("id"), req.KidID, req.Day, req.CompletionID)
	if err != nil {
		h.logger.Error("undo completion", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to undo completion"})
		return
	}

	if res.Delta != 0 {
		h.broadcast(websocket.NewMessage("chore", "completion_undone", r.PathValue("id"),
			map[string]any{"kidId": req.KidID}))
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ChoreHandler) Pause(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Until string `json:"until"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	changed, err := h.svc.PauseChore(r.Context(), r.PathValue("id"), req.Until)
	if err != nil {
		h.logger.Error("pause chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to pause chore"})
		return
	}
	if changed {
		h.broadcast(websocket.NewMessage("chore", "paused", r.PathValue("id"), nil))
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (h *ChoreHandler) PauseAll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Until string `json:"until"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	count, err := h.svc.PauseAll(r.Context(), req.Until)
	if err != nil {
		h.logger.Error("pause all", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to pause chores"})
		return
	}
	if count > 0 {
		h.broadcast(websocket.NewMessage("chore", "paused", "", map[string]any{"count": count}))
	}
	writeJSON(w, http.StatusOK, map[string]int{"paused": count})
}

func (h *ChoreHandler) Snooze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KidID string `json:"kidId"`
		Day   string `json:"day"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	changed, err := h.svc.SnoozeChore(r.Context(), r.PathValue("id"), req.KidID, req.Day)
	if err != nil {
		h.logger.Error("snooze chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to snooze chore"})
		return
	}
	if changed {
		h.broadcast(websocket.NewMessage("chore", "snoozed", r.PathValue("id"), nil))
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (h *ChoreHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Day      string          `json:"day"`
		Schedule *model.Schedule `json:"schedule"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	changed, err := h.svc.RescheduleChore(r.Context(), r.PathValue("id"), req.Day, req.Schedule)
	if err != nil {
		h.logger.Error("reschedule chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reschedule chore"})
		return
	}
	if changed {
		h.broadcast(websocket.NewMessage("chore", "rescheduled", r.PathValue("id"), nil))
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (h *ChoreHandler) Archive(w http.ResponseWriter, r *http.Request) {
	changed, err := h.svc.ArchiveChore(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("archive chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to archive chore"})
		return
	}
	if changed {
		h.broadcast(websocket.NewMessage("chore", "archived", r.PathValue("id"), nil))
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (h *ChoreHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KidIDs []string `json:"kidIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	changed, err := h.svc.AssignChore(r.Context(), r.PathValue("id"), req.KidIDs)
	if err != nil {
		h.logger.Error("assign chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to assign chore"})
		return
	}
	if changed {
		h.broadcast(websocket.NewMessage("chore", "assigned", r.PathValue("id"), nil))
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

// Board returns the kid-facing view for a day (query param "day", default
// today): open chores, progress tallies, and balances per kid.
func (h *ChoreHandler) Board(w http.ResponseWriter, r *http.Request) {
	boards, err := h.svc.Board(r.Context(), r.URL.Query().Get("day"))
	if err != nil {
		h.logger.Error("board", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load board"})
		return
	}
	writeJSON(w, http.StatusOK, boards)
}
