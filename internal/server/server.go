package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pfell/starboard/internal/family"
	"github.com/pfell/starboard/internal/handler"
	"github.com/pfell/starboard/internal/middleware"
	ws "github.com/pfell/starboard/internal/websocket"
)

type Server struct {
	svc     *family.Service
	hub     *ws.Hub
	choreH  *handler.ChoreHandler
	kidH    *handler.KidHandler
	rewardH *handler.RewardHandler
	stateH  *handler.StateHandler
	logger  *slog.Logger
}

func New(svc *family.Service, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	return &Server{
		svc:     svc,
		hub:     hub,
		choreH:  handler.NewChoreHandler(svc, hub, logger.With("component", "chore")),
		kidH:    handler.NewKidHandler(svc, hub, logger.With("component", "kid")),
		rewardH: handler.NewRewardHandler(svc, hub, logger.With("component", "reward")),
		stateH:  handler.NewStateHandler(svc, logger.With("component", "state")),
		logger:  logger,
	}
}

// Hub returns the websocket hub, for wiring external broadcasters.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Kid roster
	mux.HandleFunc("POST /api/kids", s.kidH.Create)
	mux.HandleFunc("PUT /api/kids/{id}", s.kidH.Rename)
	mux.HandleFunc("GET /api/kids/{id}/balance", s.kidH.Balance)
	mux.HandleFunc("GET /api/kids/{id}/progress", s.kidH.Progress)
	mux.HandleFunc("POST /api/kids/{id}/adjust-stars", s.kidH.AdjustStars)

	// Chore lifecycle
	mux.HandleFunc("POST /api/chores", s.choreH.Create)
	mux.HandleFunc("PUT /api/chores/{id}", s.choreH.Update)
	mux.HandleFunc("POST /api/chores/{id}/complete", s.choreH.Complete)
	mux.HandleFunc("POST /api/chores/{id}/undo-complete", s.choreH.UndoComplete)
	mux.HandleFunc("POST /api/chores/{id}/pause", s.choreH.Pause)
	mux.HandleFunc("POST /api/chores/pause-all", s.choreH.PauseAll)
	mux.HandleFunc("POST /api/chores/{id}/snooze", s.choreH.Snooze)
	mux.HandleFunc("POST /api/chores/{id}/reschedule", s.choreH.Reschedule)
	mux.HandleFunc("POST /api/chores/{id}/archive", s.choreH.Archive)
	mux.HandleFunc("POST /api/chores/{id}/assign", s.choreH.Assign)
	mux.HandleFunc("GET /api/board", s.choreH.Board)

	// Rewards
	mux.HandleFunc("POST /api/rewards", s.rewardH.Create)
	mux.HandleFunc("POST /api/rewards/{id}/archive", s.rewardH.Archive)
	mux.HandleFunc("POST /api/rewards/{id}/redeem", s.rewardH.Redeem)

	// Automation surface + parent PIN
	mux.HandleFunc("GET /api/state", s.stateH.Snapshot)
	mux.HandleFunc("POST /api/pin", s.stateH.SetPIN)
	mux.HandleFunc("POST /api/pin/verify", s.stateH.VerifyPIN)

	// WebSocket live sync
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
