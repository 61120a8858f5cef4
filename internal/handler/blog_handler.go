package handler

import (
	"net/http"

	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/response"
	"github.com/abim/abim-backend/internal/service"
	"github.com/abim/abim-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BlogHandler handles blog endpoints. List responses use the "data" key the
// public site already reads.
type BlogHandler struct {
	blogService *service.BlogService
	log         zerolog.Logger
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogService *service.BlogService, log zerolog.Logger) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		log:         log.With().Str("component", "blog_handler").Logger(),
	}
}

// ListBlogs godoc
// GET /api/blogs
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	blogs, err := h.blogService.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": blogs})
}

// GetBlog godoc
// GET /api/blogs/:id
func (h *BlogHandler) GetBlog(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	blog, err := h.blogService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": blog})
}

// CreateBlog godoc
// POST /api/blogs
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req model.BlogRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	blog, err := h.blogService.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"data": blog})
}

// UpdateBlog godoc
// PUT /api/blogs/:id
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.BlogRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	blog, err := h.blogService.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": blog})
}

// DeleteBlog godoc
// DELETE /api/blogs/:id
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.blogService.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Blog yazısı silindi"})
}
