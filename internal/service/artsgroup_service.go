package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/repository"
)

// ArtsGroupService defines the business logic for arts-group profiles.
// Profiles are edited through a multi-step wizard, so updates are partial
// and a draft can be saved at any step.
type ArtsGroupService interface {
	List(page, limit int) ([]domain.ArtsGroup, int64, error)
	GetByID(id uint64) (*domain.ArtsGroup, error)
	GetBySlug(slug string) (*domain.ArtsGroup, error)
	Create(req *domain.CreateArtsGroupRequest) (*domain.ArtsGroup, error)
	Update(id uint64, req *domain.UpdateArtsGroupRequest) (*domain.ArtsGroup, error)
	Publish(id uint64) (*domain.ArtsGroup, error)
	Delete(id uint64) error
}

type artsGroupService struct {
	repo repository.ArtsGroupRepository
}

// NewArtsGroupService creates a new ArtsGroupService
func NewArtsGroupService(repo repository.ArtsGroupRepository) ArtsGroupService {
	return &artsGroupService{repo: repo}
}

// List returns arts groups for the admin listing
func (s *artsGroupService) List(page, limit int) ([]domain.ArtsGroup, int64, error) {
	groups, total, err := s.repo.List(page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.ArtsGroup, len(groups))
	for i, g := range groups {
		out[i] = *g
	}
	return out, total, nil
}

// GetByID retrieves an arts group by ID
func (s *artsGroupService) GetByID(id uint64) (*domain.ArtsGroup, error) {
	group, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrArtsGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// GetBySlug retrieves a published arts group by slug
func (s *artsGroupService) GetBySlug(slug string) (*domain.ArtsGroup, error) {
	group, err := s.repo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrArtsGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// Create starts a new draft profile at the first wizard step
func (s *artsGroupService) Create(req *domain.CreateArtsGroupRequest) (*domain.ArtsGroup, error) {
	group := &domain.ArtsGroup{
		Name:   req.Name,
		Slug:   req.Slug,
		City:   req.City,
		State:  req.State,
		Status: domain.ArtsGroupStatusDraft,
		Step:   domain.WizardStepProfile,
	}
	if err := s.repo.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

// Update applies a partial wizard-step update. Only provided fields
// change; the step advances when the request says so.
func (s *artsGroupService) Update(id uint64, req *domain.UpdateArtsGroupRequest) (*domain.ArtsGroup, error) {
	group, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrArtsGroupNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Summary != nil {
		group.Summary = *req.Summary
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.Website != nil {
		group.Website = *req.Website
	}
	if req.City != nil {
		group.City = *req.City
	}
	if req.State != nil {
		group.State = *req.State
	}
	if req.ImageDesktopURL != nil {
		group.ImageDesktopURL = *req.ImageDesktopURL
	}
	if req.ImageMobileURL != nil {
		group.ImageMobileURL = *req.ImageMobileURL
	}
	if req.Step != nil {
		step := domain.WizardStep(*req.Step)
		switch step {
		case domain.WizardStepProfile, domain.WizardStepDetails,
			domain.WizardStepMedia, domain.WizardStepReview:
			group.Step = step
		default:
			return nil, common.ErrInvalidInput
		}
	}

	if err := s.repo.Update(group); err != nil {
		return nil, err
	}
	return group, nil
}

// Publish moves a completed profile from draft to published
func (s *artsGroupService) Publish(id uint64) (*domain.ArtsGroup, error) {
	group, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrArtsGroupNotFound
		}
		return nil, err
	}
	group.Status = domain.ArtsGroupStatusPublished
	group.Step = domain.WizardStepReview
	if err := s.repo.Update(group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete deletes an arts group
func (s *artsGroupService) Delete(id uint64) error {
	return s.repo.Delete(id)
}
