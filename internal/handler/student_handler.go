package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/response"
	"github.com/abim/abim-backend/internal/service"
	"github.com/abim/abim-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// StudentHandler serves the student view derived from course applications.
type StudentHandler struct {
	applicationService *service.ApplicationService
	log                zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(applicationService *service.ApplicationService, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		applicationService: applicationService,
		log:                log.With().Str("component", "student_handler").Logger(),
	}
}

// ListStudents godoc
// GET /api/students?page=1&per_page=20&search=ali&status=approved&course_id=3
// Groups applications by email. status defaults to approved; "all" lists every status.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(service.DefaultStudentsPerPage)))

	filter := model.StudentFilter{
		Page:    page,
		PerPage: perPage,
		Search:  strings.TrimSpace(c.Query("search")),
		Status:  c.Query("status"),
	}
	if raw := c.Query("course_id"); raw != "" {
		courseID, err := strconv.Atoi(raw)
		if err != nil || courseID <= 0 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		filter.CourseID = &courseID
	}

	result, err := h.applicationService.ListStudents(c.Request.Context(), filter)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK,
		gin.H{"students": result.Students},
		response.NewPagination(result.Page, result.PerPage, result.Total),
	)
}

// GetStudent godoc
// GET /api/students/:email
// Returns the student's approved application history.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.applicationService.GetStudent(c.Request.Context(), c.Param("email"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// UpdateStudentStatus godoc
// PUT /api/students/:email/status
// Applies the status to every application of the email.
func (h *StudentHandler) UpdateStudentStatus(c *gin.Context) {
	var req model.UpdateStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	updated, err := h.applicationService.SetStatusByEmail(c.Request.Context(), c.Param("email"), req.Status)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "Öğrenci durumu güncellendi",
		"updated": updated,
	})
}
