package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/masarhq/masar-backend/internal/logger"
	"github.com/masarhq/masar-backend/internal/services"
)

type TopicHandler struct {
	log          *logger.Logger
	topicService services.TopicService
}

func NewTopicHandler(log *logger.Logger, topicService services.TopicService) *TopicHandler {
	return &TopicHandler{
		log:          log.With("handler", "TopicHandler"),
		topicService: topicService,
	}
}

func (h *TopicHandler) Create(c *gin.Context) {
	var input services.TopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if input.RoadmapID == uuid.Nil || input.Title == "" {
		RespondError(c, http.StatusBadRequest, "missing_fields", errors.New("roadmap_id and title are required"))
		return
	}

	topic, err := h.topicService.CreateTopic(c.Request.Context(), nil, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoadmapNotFound):
			RespondError(c, http.StatusNotFound, "roadmap_not_found", err)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			RespondError(c, http.StatusConflict, "duplicate_topic", err)
		default:
			h.log.Error("Create topic failed", "error", err)
			RespondError(c, http.StatusInternalServerError, "create_topic_failed", errors.New("failed to create topic"))
		}
		return
	}
	RespondCreated(c, gin.H{"topic": topic})
}

type updateTopicRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
}

func (h *TopicHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req updateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}

	topic, err := h.topicService.UpdateTopic(c.Request.Context(), nil, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTopicNotFound):
			RespondError(c, http.StatusNotFound, "topic_not_found", err)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			RespondError(c, http.StatusConflict, "duplicate_topic", err)
		default:
			h.log.Error("Update topic failed", "error", err, "topic_id", id)
			RespondError(c, http.StatusInternalServerError, "update_topic_failed", errors.New("failed to update topic"))
		}
		return
	}
	RespondOK(c, gin.H{"topic": topic})
}

func (h *TopicHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.topicService.SoftDeleteTopic(c.Request.Context(), nil, id); err != nil {
		if errors.Is(err, services.ErrTopicNotFound) {
			RespondError(c, http.StatusNotFound, "topic_not_found", err)
			return
		}
		h.log.Error("Delete topic failed", "error", err, "topic_id", id)
		RespondError(c, http.StatusInternalServerError, "delete_topic_failed", errors.New("failed to delete topic"))
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

type updateTaskRequest struct {
	Completed *bool `json:"completed"`
}

func (h *TopicHandler) UpdateTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.Completed == nil {
		RespondError(c, http.StatusBadRequest, "missing_fields", errors.New("completed is required"))
		return
	}

	task, err := h.topicService.SetTaskCompletion(c.Request.Context(), id, *req.Completed)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			RespondError(c, http.StatusNotFound, "task_not_found", err)
			return
		}
		h.log.Error("Update task failed", "error", err, "task_id", id)
		RespondError(c, http.StatusInternalServerError, "update_task_failed", errors.New("failed to update task"))
		return
	}
	RespondOK(c, gin.H{"task": task})
}
