package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/internal/repository"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/logger"
)

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrInvalidSource    = errors.New("invalid lead source")
	ErrInvalidStage     = errors.New("invalid pipeline stage")
	ErrStageLocked      = errors.New("lead in a closed stage can only be reopened")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrProfileForbidden = errors.New("profile belongs to another tenant")
)

// LeadService defines the interface for lead management operations
type LeadService interface {
	// Create creates a new lead and scores it
	Create(ctx context.Context, tenantID string, req *dto.CreateLeadRequest) (*dto.LeadResponse, error)
	// GetByID retrieves a lead by ID
	GetByID(ctx context.Context, tenantID, id string) (*dto.LeadResponse, error)
	// List retrieves leads with pagination and filters
	List(ctx context.Context, tenantID string, query *dto.ListLeadsQuery) (*dto.ListLeadsResponse, error)
	// Update updates a lead and re-scores it
	Update(ctx context.Context, tenantID, id string, req *dto.UpdateLeadRequest) (*dto.LeadResponse, error)
	// MoveStage moves a lead through the pipeline
	MoveStage(ctx context.Context, tenantID, id string, req *dto.MoveStageRequest) (*dto.LeadResponse, error)
	// Rescore recomputes and persists a lead's score on demand
	Rescore(ctx context.Context, tenantID, id string) (*dto.LeadResponse, error)
	// Assign assigns a lead to a profile and notifies them
	Assign(ctx context.Context, tenantID, id string, req *dto.AssignLeadRequest) (*dto.LeadResponse, error)
	// Delete soft deletes a lead
	Delete(ctx context.Context, tenantID, id string) error
}

// leadService implements LeadService
type leadService struct {
	leadRepo     repository.LeadRepository
	profileRepo  repository.ProfileRepository
	scoring      ScoringService
	notification NotificationService
}

// NewLeadService creates a new LeadService
func NewLeadService(leadRepo repository.LeadRepository, profileRepo repository.ProfileRepository, scoring ScoringService, notification NotificationService) LeadService {
	return &leadService{
		leadRepo:     leadRepo,
		profileRepo:  profileRepo,
		scoring:      scoring,
		notification: notification,
	}
}

// Create creates a new lead and scores it
func (s *leadService) Create(ctx context.Context, tenantID string, req *dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if !domain.IsValidSource(req.Source) {
		return nil, ErrInvalidSource
	}

	if req.AssignedProfileID != nil {
		if err := s.checkProfile(ctx, tenantID, *req.AssignedProfileID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	lead := &domain.Lead{
		ID:                uuid.New().String(),
		TenantID:          tenantID,
		AssignedProfileID: req.AssignedProfileID,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Source:            req.Source,
		Interest:          req.Interest,
		Budget:            req.Budget,
		Stage:             domain.StageNew,
		Metadata:          req.Metadata,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	lead.Score = s.scoring.Score(ctx, lead)

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	if lead.AssignedProfileID != nil {
		s.notifyAssignment(ctx, lead, *lead.AssignedProfileID)
	}

	return s.toLeadResponse(lead), nil
}

// GetByID retrieves a lead by ID
func (s *leadService) GetByID(ctx context.Context, tenantID, id string) (*dto.LeadResponse, error) {
	lead, err := s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return s.toLeadResponse(lead), nil
}

// List retrieves leads with pagination and filters
func (s *leadService) List(ctx context.Context, tenantID string, query *dto.ListLeadsQuery) (*dto.ListLeadsResponse, error) {
	query.SetDefaults()

	if query.Stage != "" && !domain.IsValidStage(query.Stage) {
		return nil, ErrInvalidStage
	}

	filter := repository.LeadFilter{
		Stage:             query.Stage,
		AssignedProfileID: query.ProfileID,
		Source:            query.Source,
		Search:            query.Search,
		Page:              query.Page,
		Limit:             query.Limit,
	}

	leads, totalCount, err := s.leadRepo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	leadResponses := make([]dto.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		leadResponses = append(leadResponses, *s.toLeadResponse(lead))
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &dto.ListLeadsResponse{
		Leads:      leadResponses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update updates a lead and re-scores it
func (s *leadService) Update(ctx context.Context, tenantID, id string, req *dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	if valid, errMsg := req.Validate(); !valid {
		return nil, errors.New(errMsg)
	}

	lead, err := s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Interest != nil {
		lead.Interest = *req.Interest
	}
	if req.Budget != nil {
		lead.Budget = req.Budget
	}
	if req.Metadata != nil {
		lead.Metadata = *req.Metadata
	}

	lead.Score = s.scoring.Score(ctx, lead)
	lead.UpdatedAt = time.Now()

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}

	return s.toLeadResponse(lead), nil
}

// MoveStage moves a lead through the pipeline
func (s *leadService) MoveStage(ctx context.Context, tenantID, id string, req *dto.MoveStageRequest) (*dto.LeadResponse, error) {
	if !domain.IsValidStage(req.Stage) {
		return nil, ErrInvalidStage
	}

	lead, err := s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	if !lead.CanMoveTo(req.Stage) {
		return nil, ErrStageLocked
	}

	if err := s.leadRepo.UpdateStage(ctx, tenantID, id, req.Stage); err != nil {
		return nil, err
	}

	lead.Stage = req.Stage
	lead.UpdatedAt = time.Now()
	return s.toLeadResponse(lead), nil
}

// Rescore recomputes and persists a lead's score on demand
func (s *leadService) Rescore(ctx context.Context, tenantID, id string) (*dto.LeadResponse, error) {
	lead, err := s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	lead.Score = s.scoring.Score(ctx, lead)
	lead.UpdatedAt = time.Now()

	if err := s.leadRepo.UpdateScore(ctx, tenantID, id, lead.Score); err != nil {
		return nil, err
	}
	return s.toLeadResponse(lead), nil
}

// Assign assigns a lead to a profile and notifies them
func (s *leadService) Assign(ctx context.Context, tenantID, id string, req *dto.AssignLeadRequest) (*dto.LeadResponse, error) {
	lead, err := s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	if err := s.checkProfile(ctx, tenantID, req.ProfileID); err != nil {
		return nil, err
	}

	lead.AssignedProfileID = &req.ProfileID
	lead.UpdatedAt = time.Now()

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}

	s.notifyAssignment(ctx, lead, req.ProfileID)
	return s.toLeadResponse(lead), nil
}

// Delete soft deletes a lead
func (s *leadService) Delete(ctx context.Context, tenantID, id string) error {
	lead, err := s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if lead == nil {
		return ErrLeadNotFound
	}
	return s.leadRepo.SoftDelete(ctx, tenantID, id)
}

func (s *leadService) checkProfile(ctx context.Context, tenantID, profileID string) error {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrProfileNotFound
	}
	if profile.TenantID != tenantID {
		return ErrProfileForbidden
	}
	return nil
}

// notifyAssignment tells the profile about their new lead. Best effort:
// the assignment itself is already persisted.
func (s *leadService) notifyAssignment(ctx context.Context, lead *domain.Lead, profileID string) {
	body := fmt.Sprintf("%s (%s) was assigned to you", lead.Name, lead.Source)
	if err := s.notification.Notify(ctx, lead.TenantID, profileID,
		domain.NotificationKindLeadAssigned, "New lead assigned", body); err != nil {
		logger.WarnCtx(ctx, "lead assignment notification failed",
			zap.String("lead_id", lead.ID),
			zap.String("profile_id", profileID),
			zap.Error(err))
	}
}

// toLeadResponse converts domain.Lead to dto.LeadResponse
func (s *leadService) toLeadResponse(lead *domain.Lead) *dto.LeadResponse {
	return &dto.LeadResponse{
		ID:                lead.ID,
		TenantID:          lead.TenantID,
		AssignedProfileID: lead.AssignedProfileID,
		Name:              lead.Name,
		Email:             lead.Email,
		Phone:             lead.Phone,
		Source:            lead.Source,
		Interest:          lead.Interest,
		Budget:            lead.Budget,
		Stage:             lead.Stage,
		Score:             lead.Score,
		Metadata:          lead.Metadata,
		CreatedAt:         lead.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         lead.UpdatedAt.Format(time.RFC3339),
	}
}
