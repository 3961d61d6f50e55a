package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/internal/repository"
)

var (
	ErrEventNotFound    = errors.New("calendar event not found")
	ErrInvalidEventType = errors.New("invalid event type")
	ErrInvalidTimeRange = errors.New("end_time must be after start_time")
)

// AgendaService defines the interface for calendar event operations
type AgendaService interface {
	// Create schedules a new event on a profile's agenda
	Create(ctx context.Context, tenantID, profileID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, tenantID, id string) (*dto.EventResponse, error)
	// List retrieves events within a time range
	List(ctx context.Context, tenantID string, query *dto.ListEventsQuery) ([]dto.EventResponse, error)
	// ListDomain retrieves events within a time range as domain objects
	ListDomain(ctx context.Context, tenantID, profileID string, from, to time.Time) ([]*domain.CalendarEvent, error)
	// Update updates an event
	Update(ctx context.Context, tenantID, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	// Delete removes an event
	Delete(ctx context.Context, tenantID, id string) error
}

// agendaService implements AgendaService
type agendaService struct {
	eventRepo repository.EventRepository
}

// NewAgendaService creates a new AgendaService
func NewAgendaService(eventRepo repository.EventRepository) AgendaService {
	return &agendaService{eventRepo: eventRepo}
}

// Create schedules a new event on a profile's agenda
func (s *agendaService) Create(ctx context.Context, tenantID, profileID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if !domain.IsValidEventType(req.EventType) {
		return nil, ErrInvalidEventType
	}
	if valid, _ := req.Validate(); !valid {
		return nil, ErrInvalidTimeRange
	}

	now := time.Now()
	event := &domain.CalendarEvent{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ProfileID:   profileID,
		LeadID:      req.LeadID,
		AssetID:     req.AssetID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		EventType:   req.EventType,
		Metadata:    req.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return s.toEventResponse(event), nil
}

// GetByID retrieves an event by ID
func (s *agendaService) GetByID(ctx context.Context, tenantID, id string) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return s.toEventResponse(event), nil
}

// List retrieves events within a time range
func (s *agendaService) List(ctx context.Context, tenantID string, query *dto.ListEventsQuery) ([]dto.EventResponse, error) {
	from, to := defaultRange(query.From, query.To)

	events, err := s.eventRepo.ListByRange(ctx, tenantID, query.ProfileID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, *s.toEventResponse(event))
	}
	return responses, nil
}

// ListDomain retrieves events within a time range as domain objects
func (s *agendaService) ListDomain(ctx context.Context, tenantID, profileID string, from, to time.Time) ([]*domain.CalendarEvent, error) {
	from, to = defaultRange(from, to)
	return s.eventRepo.ListByRange(ctx, tenantID, profileID, from, to)
}

// Update updates an event. Moving start_time re-arms the reminder so the
// rescheduled event is picked up by a later sweep.
func (s *agendaService) Update(ctx context.Context, tenantID, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	if valid, errMsg := req.Validate(); !valid {
		return nil, errors.New(errMsg)
	}

	event, err := s.eventRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartTime != nil && !req.StartTime.Equal(event.StartTime) {
		event.StartTime = *req.StartTime
		event.ReminderSent = false
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.EventType != nil {
		if !domain.IsValidEventType(*req.EventType) {
			return nil, ErrInvalidEventType
		}
		event.EventType = *req.EventType
	}
	if req.LeadID != nil {
		event.LeadID = req.LeadID
	}
	if req.AssetID != nil {
		event.AssetID = req.AssetID
	}
	if req.Metadata != nil {
		event.Metadata = *req.Metadata
	}

	if !event.EndTime.After(event.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return s.toEventResponse(event), nil
}

// Delete removes an event
func (s *agendaService) Delete(ctx context.Context, tenantID, id string) error {
	event, err := s.eventRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	return s.eventRepo.Delete(ctx, tenantID, id)
}

// defaultRange fills missing bounds with a month around now
func defaultRange(from, to time.Time) (time.Time, time.Time) {
	if from.IsZero() {
		from = time.Now().AddDate(0, 0, -7)
	}
	if to.IsZero() {
		to = from.AddDate(0, 1, 0)
	}
	return from, to
}

// toEventResponse converts domain.CalendarEvent to dto.EventResponse
func (s *agendaService) toEventResponse(event *domain.CalendarEvent) *dto.EventResponse {
	return &dto.EventResponse{
		ID:           event.ID,
		TenantID:     event.TenantID,
		ProfileID:    event.ProfileID,
		LeadID:       event.LeadID,
		AssetID:      event.AssetID,
		Title:        event.Title,
		Description:  event.Description,
		StartTime:    event.StartTime.Format(time.RFC3339),
		EndTime:      event.EndTime.Format(time.RFC3339),
		EventType:    event.EventType,
		ReminderSent: event.ReminderSent,
		Metadata:     event.Metadata,
		CreatedAt:    event.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    event.UpdatedAt.Format(time.RFC3339),
	}
}
