package handler

import (
	"errors"
	"net/http"

	"github.com/abim/abim-backend/internal/metrics"
	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/response"
	"github.com/abim/abim-backend/internal/service"
	"github.com/abim/abim-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ApplicationHandler handles the public application form and its admin review.
type ApplicationHandler struct {
	applicationService *service.ApplicationService
	log                zerolog.Logger
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(applicationService *service.ApplicationService, log zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		log:                log.With().Str("component", "application_handler").Logger(),
	}
}

// SubmitApplication godoc
// POST /api/course-applications
// Stores a pending application. A second application for the same course with
// the same email or phone is rejected.
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var req model.SubmitApplicationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		metrics.RecordApplicationSubmission("invalid")
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	id, err := h.applicationService.Submit(c.Request.Context(), &req)
	if err != nil {
		metrics.RecordApplicationSubmission(submissionResult(err))
		fail(c, h.log, err)
		return
	}

	metrics.RecordApplicationSubmission("accepted")
	response.Success(c, http.StatusCreated, gin.H{
		"message":       "Başvurunuz başarıyla alındı!",
		"applicationId": id,
	})
}

// ListApplications godoc
// GET /api/course-applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	applications, err := h.applicationService.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applications": applications})
}

// UpdateApplicationStatus godoc
// PUT /api/course-applications/:id/status
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.applicationService.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Başvuru durumu güncellendi"})
}

func submissionResult(err error) string {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrDuplicateEmail), errors.Is(err, service.ErrDuplicatePhone):
		return "duplicate"
	case errors.Is(err, service.ErrCourseNotFound), errors.As(err, &ve):
		return "invalid"
	default:
		return "error"
	}
}
