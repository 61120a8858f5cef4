package service

import (
	"context"
	"errors"

	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/repository"
)

// BannerService handles home page banner management.
type BannerService struct {
	repo BannerStore
}

// NewBannerService creates a new BannerService.
func NewBannerService(repo BannerStore) *BannerService {
	return &BannerService{repo: repo}
}

// List returns all banners in display order.
func (s *BannerService) List(ctx context.Context) ([]model.Banner, error) {
	return s.repo.List(ctx)
}

// Create stores a new banner. Banners are active unless the request says otherwise.
func (s *BannerService) Create(ctx context.Context, req *model.BannerRequest) (*model.Banner, error) {
	b := bannerFromRequest(req)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update overwrites a banner.
func (s *BannerService) Update(ctx context.Context, id int, req *model.BannerRequest) (*model.Banner, error) {
	b := bannerFromRequest(req)
	b.ID = id
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, bannerErr(err)
	}
	return b, nil
}

// Delete removes a banner.
func (s *BannerService) Delete(ctx context.Context, id int) error {
	return bannerErr(s.repo.Delete(ctx, id))
}

func bannerFromRequest(req *model.BannerRequest) *model.Banner {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &model.Banner{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		IsActive: active,
		Order:    req.Order,
	}
}

func bannerErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBannerNotFound
	}
	return err
}
