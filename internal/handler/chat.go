package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/rvrjc/campusbot/internal/middleware"
	"github.com/rvrjc/campusbot/internal/model"
	"github.com/rvrjc/campusbot/internal/service"
	"github.com/rvrjc/campusbot/pkg/logger"
)

// ChatHandler handles chat endpoints.
type ChatHandler struct {
	chatService *service.ChatService
	maxLength   int
	logger      *logger.Logger
}

// NewChatHandler creates a chat handler accepting messages up to maxLength bytes.
func NewChatHandler(chatSvc *service.ChatService, maxLength int, log *logger.Logger) *ChatHandler {
	if maxLength <= 0 {
		maxLength = middleware.DefaultMaxMessageLength
	}
	return &ChatHandler{
		chatService: chatSvc,
		maxLength:   maxLength,
		logger:      log,
	}
}

// Send handles POST /api/v1/chat
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// JSON escapes can make the body larger than the decoded message.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(h.maxLength)*6+1024))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusBadRequest, middleware.ErrMessageTooLong.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !utf8.Valid(body) {
		writeError(w, http.StatusBadRequest, middleware.ErrMessageNotUTF8.Error())
		return
	}

	var req model.ChatRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateMessageContent(req.Message, h.maxLength); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SessionID != "" {
		if err := middleware.ValidateSessionID(req.SessionID); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	reply := h.chatService.Send(ctx, req.SessionID, req.Message)

	h.logger.WithContext(middleware.GetCorrelationID(ctx), reply.SessionID).Debug("chat reply",
		zap.String("kind", string(reply.Kind)),
		zap.String("intent", reply.Intent),
	)

	links := reply.Links
	if links == nil {
		links = []model.Link{}
	}
	writeJSON(w, http.StatusOK, &model.ChatResponse{
		SessionID:  reply.SessionID,
		Response:   reply.Text,
		Links:      links,
		IsFollowUp: reply.IsFollowUp,
		Intent:     reply.Intent,
		Kind:       string(reply.Kind),
		Score:      reply.Score,
	})
}
