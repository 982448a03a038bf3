package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rvrjc/campusbot/internal/engine"
	"github.com/rvrjc/campusbot/internal/model"
	"github.com/rvrjc/campusbot/pkg/logger"
	"github.com/rvrjc/campusbot/pkg/metrics"
	"github.com/rvrjc/campusbot/pkg/tracing"
)

// Responder answers a message given the prior history.
type Responder interface {
	Handle(message string, history []model.Exchange) engine.Response
}

// Publisher receives completed exchanges.
type Publisher interface {
	PublishExchange(ctx context.Context, ev model.ExchangeEvent) error
}

// Reply is the answer to one chat turn.
type Reply struct {
	SessionID string
	engine.Response
}

// ChatService runs a chat turn: answer, record, publish.
type ChatService struct {
	responder Responder
	sessions  *SessionService
	publisher Publisher
	logger    *logger.Logger
	tracer    trace.Tracer
}

// NewChatService creates a chat service. publisher may be nil.
func NewChatService(responder Responder, sessions *SessionService, publisher Publisher, log *logger.Logger) *ChatService {
	return &ChatService{
		responder: responder,
		sessions:  sessions,
		publisher: publisher,
		logger:    log,
		tracer:    tracing.Tracer("github.com/rvrjc/campusbot/internal/service"),
	}
}

// Send answers message within sessionID, creating a session id when empty.
// Answered turns are appended to the history as a user and a bot exchange;
// clarifications for empty messages are not recorded.
func (s *ChatService) Send(ctx context.Context, sessionID, message string) Reply {
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	ctx, span := s.tracer.Start(ctx, "chat.send", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	var resp engine.Response
	var at time.Time
	s.sessions.Turn(ctx, sessionID, func(history []model.Exchange) []model.Exchange {
		resp = s.responder.Handle(message, history)
		at = time.Now()
		if resp.Kind == engine.KindClarification {
			return nil
		}
		return []model.Exchange{
			model.NewExchange(model.SenderUser, message, at),
			model.NewExchange(model.SenderBot, resp.Text, at),
		}
	})

	span.SetAttributes(
		attribute.String("chat.kind", string(resp.Kind)),
		attribute.String("chat.intent", resp.Intent),
		attribute.Float64("chat.score", resp.Score),
		attribute.Bool("chat.follow_up", resp.IsFollowUp),
	)
	metrics.RecordChat(string(resp.Kind), resp.Strategy, resp.Score, resp.Corrected != "")

	s.logger.Debug("chat answered",
		zap.String("session_id", sessionID),
		zap.String("kind", string(resp.Kind)),
		zap.String("intent", resp.Intent),
		zap.Float64("score", resp.Score),
	)

	if resp.Kind != engine.KindClarification {
		s.publish(ctx, model.ExchangeEvent{
			ID:          uuid.Must(uuid.NewV7()).String(),
			SessionID:   sessionID,
			UserMessage: message,
			BotMessage:  resp.Text,
			Intent:      resp.Intent,
			Kind:        string(resp.Kind),
			IsFollowUp:  resp.IsFollowUp,
			Score:       resp.Score,
			CreatedAt:   at.UTC(),
		})
	}

	return Reply{SessionID: sessionID, Response: resp}
}

func (s *ChatService) publish(ctx context.Context, ev model.ExchangeEvent) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishExchange(ctx, ev)
	metrics.RecordPublish(err)
	if err != nil {
		s.logger.Warn("failed to publish exchange event",
			zap.String("session_id", ev.SessionID),
			zap.Error(err),
		)
	}
}
