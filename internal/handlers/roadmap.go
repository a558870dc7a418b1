package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/masarhq/masar-backend/internal/logger"
	"github.com/masarhq/masar-backend/internal/services"
)

type RoadmapHandler struct {
	log               *logger.Logger
	roadmapService    services.RoadmapService
	generationService services.RoadmapGenerationService
}

func NewRoadmapHandler(log *logger.Logger, roadmapService services.RoadmapService, generationService services.RoadmapGenerationService) *RoadmapHandler {
	return &RoadmapHandler{
		log:               log.With("handler", "RoadmapHandler"),
		roadmapService:    roadmapService,
		generationService: generationService,
	}
}

type createRoadmapRequest struct {
	UserID      string `json:"user_id"`
	RoadmapRole string `json:"roadmap_role"`
}

func (h *RoadmapHandler) Create(c *gin.Context) {
	var req createRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.UserID == "" || req.RoadmapRole == "" {
		RespondError(c, http.StatusBadRequest, "missing_fields", fmt.Errorf("user_id and roadmap_role are required"))
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	roadmap, err := h.generationService.GenerateForUser(c.Request.Context(), userID, req.RoadmapRole)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			RespondError(c, http.StatusNotFound, "user_not_found", err)
		case errors.Is(err, services.ErrRoadmapExists):
			RespondError(c, http.StatusBadRequest, "roadmap_exists", err)
		default:
			h.log.Error("Roadmap generation failed", "error", err, "user_id", userID)
			RespondError(c, http.StatusInternalServerError, "generation_failed", fmt.Errorf("failed to generate roadmap content"))
		}
		return
	}
	RespondCreated(c, gin.H{"roadmap": roadmap})
}

func (h *RoadmapHandler) Get(c *gin.Context) {
	rawID := c.Query("id")
	if rawID == "" {
		roadmaps, err := h.roadmapService.GetAll(c.Request.Context(), nil)
		if err != nil {
			h.log.Error("List roadmaps failed", "error", err)
			RespondError(c, http.StatusInternalServerError, "load_roadmaps_failed", errors.New("failed to load roadmaps"))
			return
		}
		RespondOK(c, gin.H{"roadmaps": roadmaps})
		return
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	roadmap, err := h.roadmapService.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		if errors.Is(err, services.ErrRoadmapNotFound) {
			RespondError(c, http.StatusNotFound, "roadmap_not_found", err)
			return
		}
		h.log.Error("Get roadmap failed", "error", err, "roadmap_id", id)
		RespondError(c, http.StatusInternalServerError, "load_roadmap_failed", errors.New("failed to load roadmap"))
		return
	}
	RespondOK(c, gin.H{"roadmap": roadmap})
}

type updateRoadmapRequest struct {
	Role    *string         `json:"role"`
	Details json.RawMessage `json:"details"`
}

func (h *RoadmapHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req updateRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	roadmap, err := h.roadmapService.Update(c.Request.Context(), nil, id, req.Role, req.Details)
	if err != nil {
		if errors.Is(err, services.ErrRoadmapNotFound) {
			RespondError(c, http.StatusNotFound, "roadmap_not_found", err)
			return
		}
		h.log.Error("Update roadmap failed", "error", err, "roadmap_id", id)
		RespondError(c, http.StatusInternalServerError, "update_roadmap_failed", errors.New("failed to update roadmap"))
		return
	}
	RespondOK(c, gin.H{"roadmap": roadmap})
}

func (h *RoadmapHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.roadmapService.SoftDelete(c.Request.Context(), nil, id); err != nil {
		if errors.Is(err, services.ErrRoadmapNotFound) {
			RespondError(c, http.StatusNotFound, "roadmap_not_found", err)
			return
		}
		h.log.Error("Delete roadmap failed", "error", err, "roadmap_id", id)
		RespondError(c, http.StatusInternalServerError, "delete_roadmap_failed", errors.New("failed to delete roadmap"))
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
