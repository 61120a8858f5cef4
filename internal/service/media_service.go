package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abim/abim-backend/internal/config"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Sentinel errors for media uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Upload subdirectory and URL prefix of course images.
const (
	courseImageDir = "courses"
	uploadsPrefix  = "/uploads/"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var allowedMIMETypes = []string{"image/jpeg", "image/png", "image/webp"}

// StoredImage describes a saved upload.
type StoredImage struct {
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
}

// MediaService handles file upload operations.
type MediaService struct {
	cfg *config.Config
}

// NewMediaService creates a new MediaService.
func NewMediaService(cfg *config.Config) *MediaService {
	return &MediaService{cfg: cfg}
}

// SaveImage stores an uploaded image under a random name. Both the file
// extension and the sniffed content must be JPEG, PNG or WEBP.
func (s *MediaService) SaveImage(src io.ReadSeeker, originalName string, size int64) (*StoredImage, error) {
	if size > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, size, s.cfg.MaxUploadBytes)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: extension %q", ErrUnsupportedFileType, ext)
	}

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedMIMETypes...) {
		return nil, fmt.Errorf("%w: %s (allowed: %s)",
			ErrUnsupportedFileType, mtype.String(), strings.Join(allowedMIMETypes, ", "))
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	dir := filepath.Join(s.cfg.UploadDir, courseImageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	// The size header is client supplied.
	written, err := io.Copy(dst, io.LimitReader(src, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}
	if written > s.cfg.MaxUploadBytes {
		_ = os.Remove(dst.Name())
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, s.cfg.MaxUploadBytes)
	}

	return &StoredImage{
		ImageURL: s.cfg.PublicBaseURL + uploadsPrefix + courseImageDir + "/" + filename,
		Filename: filename,
	}, nil
}
