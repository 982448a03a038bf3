package handler

import (
	"net/http"

	"github.com/rvrjc/campusbot/internal/model"
)

// TopicLister lists the topics the assistant can answer.
type TopicLister interface {
	Topics() []string
}

// TopicsHandler handles GET /api/v1/topics.
type TopicsHandler struct {
	topics TopicLister
}

// NewTopicsHandler creates a new topics handler.
func NewTopicsHandler(topics TopicLister) *TopicsHandler {
	return &TopicsHandler{topics: topics}
}

// List handles GET /api/v1/topics
func (h *TopicsHandler) List(w http.ResponseWriter, r *http.Request) {
	topics := h.topics.Topics()
	if topics == nil {
		topics = []string{}
	}
	writeJSON(w, http.StatusOK, &model.TopicsResponse{Topics: topics})
}
