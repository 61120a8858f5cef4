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

// BannerHandler handles the homepage slider banners.
type BannerHandler struct {
	bannerService *service.BannerService
	log           zerolog.Logger
}

// NewBannerHandler creates a new BannerHandler.
func NewBannerHandler(bannerService *service.BannerService, log zerolog.Logger) *BannerHandler {
	return &BannerHandler{
		bannerService: bannerService,
		log:           log.With().Str("component", "banner_handler").Logger(),
	}
}

// ListBanners godoc
// GET /api/banners
func (h *BannerHandler) ListBanners(c *gin.Context) {
	banners, err := h.bannerService.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": banners})
}

// CreateBanner godoc
// POST /api/banners
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var req model.BannerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	banner, err := h.bannerService.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"data": banner})
}

// UpdateBanner godoc
// PUT /api/banners/:id
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.BannerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	banner, err := h.bannerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": banner})
}

// DeleteBanner godoc
// DELETE /api/banners/:id
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.bannerService.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Banner silindi"})
}
