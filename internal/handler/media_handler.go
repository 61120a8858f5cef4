package handler

import (
	"errors"
	"net/http"

	"github.com/abim/abim-backend/internal/response"
	"github.com/abim/abim-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// multipartOverhead is the allowance for boundaries and headers on top of the file size.
const multipartOverhead = 1 << 20

// MediaHandler handles media upload endpoints.
type MediaHandler struct {
	mediaService *service.MediaService
	maxBytes     int64
	log          zerolog.Logger
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService *service.MediaService, maxBytes int64, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		maxBytes:     maxBytes,
		log:          log.With().Str("component", "media_handler").Logger(),
	}
}

// UploadImage godoc
// POST /api/upload
// Stores the multipart "image" file and returns its public URL.
func (h *MediaHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
			return
		}
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	stored, err := h.mediaService.SaveImage(file, header.Filename, header.Size)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	h.log.Info().Str("filename", stored.Filename).Int64("size", header.Size).Msg("Image uploaded")
	response.Success(c, http.StatusOK, gin.H{
		"imageUrl": stored.ImageURL,
		"filename": stored.Filename,
	})
}
