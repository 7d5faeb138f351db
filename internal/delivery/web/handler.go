package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
	"github.com/yourusername/portfolio-bot/internal/usecase"
)

// Handler HTTP handlers for the single conversation
type Handler struct {
	chat     usecase.ChatUseCase
	kb       *entity.KnowledgeBase
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New creates the handler set
func New(chat usecase.ChatUseCase, kb *entity.KnowledgeBase, logger *zap.Logger) *Handler {
	return &Handler{
		chat:   chat,
		kb:     kb,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// RegisterRoutes mounts the conversation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/conversation", h.handleConversation)
	r.Post("/messages", h.handleSubmit)
	r.Get("/profile", h.handleProfile)
	r.Get("/ws", h.handleWebSocket)
}

type submitRequest struct {
	Text string `json:"text"`
}

type submitResponse struct {
	Visitor entity.Message      `json:"visitor"`
	Reply   entity.Message      `json:"reply"`
	Source  usecase.ReplySource `json:"source"`
}

func (h *Handler) handleConversation(w http.ResponseWriter, r *http.Request) {
	snap, err := h.chat.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("failed to read conversation", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to read conversation")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// handleSubmit blocks until the reply is appended
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turn, err := h.chat.Submit(r.Context(), payload.Text)
	if err != nil {
		status, msg := submitStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("submit failed", zap.Error(err))
		}
		respondError(w, status, msg)
		return
	}

	reply, err := turn.Wait(r.Context())
	if err != nil {
		// client went away; the reply is still appended to the conversation
		h.logger.Debug("client left before reply", zap.Error(err))
		return
	}

	respondJSON(w, http.StatusOK, submitResponse{
		Visitor: turn.Visitor(),
		Reply:   reply,
		Source:  turn.Source(),
	})
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.kb.Profile())
}

// submitStatus maps orchestrator input errors to HTTP statuses
func submitStatus(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrEmptyMessage):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase.ErrTurnInProgress):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "failed to submit message"
	}
}
