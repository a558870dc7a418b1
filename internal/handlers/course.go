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

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

type updateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Instructor  *string `json:"instructor"`
	CourseLink  *string `json:"course_link"`
}

// Update handles POST /api/courses/:id, matching the original surface where
// course updates ride on POST.
func (h *CourseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req updateCourseRequest
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
	if req.Instructor != nil {
		updates["instructor"] = *req.Instructor
	}
	if req.CourseLink != nil {
		updates["course_link"] = *req.CourseLink
	}

	course, err := h.courseService.Update(c.Request.Context(), nil, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			RespondError(c, http.StatusNotFound, "course_not_found", err)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			RespondError(c, http.StatusConflict, "duplicate_course", err)
		default:
			h.log.Error("Update course failed", "error", err, "course_id", id)
			RespondError(c, http.StatusInternalServerError, "update_course_failed", errors.New("failed to update course"))
		}
		return
	}
	RespondOK(c, gin.H{"course": course})
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.courseService.SoftDelete(c.Request.Context(), nil, id); err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		h.log.Error("Delete course failed", "error", err, "course_id", id)
		RespondError(c, http.StatusInternalServerError, "delete_course_failed", errors.New("failed to delete course"))
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
