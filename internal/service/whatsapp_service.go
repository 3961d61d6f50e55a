package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/internal/gateway"
	"github.com/laxautomacoes/crmLAX-sub001/internal/repository"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/logger"
)

var (
	ErrLeadHasNoPhone = errors.New("lead has no phone number")
	ErrGatewaySend    = errors.New("whatsapp gateway rejected the message")
)

// WhatsAppService handles the two directions of the gateway integration:
// inbound webhook deliveries become leads and conversation history, and
// agents send outbound replies through the gateway.
type WhatsAppService interface {
	// IngestWebhook stores an inbound message, creating or matching a lead
	// by phone number
	IngestWebhook(ctx context.Context, tenantID string, req *dto.WebhookMessageRequest) (*dto.WebhookResponse, error)
	// SendToLead sends an outbound message to a lead's phone and records it
	SendToLead(ctx context.Context, tenantID, leadID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	// History lists the stored conversation for a lead, oldest first
	History(ctx context.Context, tenantID, leadID string) ([]dto.MessageResponse, error)
}

type whatsAppService struct {
	messageRepo repository.MessageRepository
	leadRepo    repository.LeadRepository
	scoring     ScoringService
	sender      gateway.WhatsAppSender
}

// NewWhatsAppService creates a new WhatsAppService
func NewWhatsAppService(messageRepo repository.MessageRepository, leadRepo repository.LeadRepository, scoring ScoringService, sender gateway.WhatsAppSender) WhatsAppService {
	return &whatsAppService{
		messageRepo: messageRepo,
		leadRepo:    leadRepo,
		scoring:     scoring,
		sender:      sender,
	}
}

// IngestWebhook stores an inbound message, creating or matching a lead by phone
func (s *whatsAppService) IngestWebhook(ctx context.Context, tenantID string, req *dto.WebhookMessageRequest) (*dto.WebhookResponse, error) {
	lead, err := s.leadRepo.GetByPhone(ctx, tenantID, req.Phone)
	if err != nil {
		return nil, err
	}

	newLead := false
	if lead == nil {
		lead, err = s.createLeadFromMessage(ctx, tenantID, req)
		if err != nil {
			return nil, err
		}
		newLead = true
	}

	sentAt := req.Timestamp
	if sentAt.IsZero() {
		sentAt = time.Now()
	}

	message := &domain.WhatsAppMessage{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		LeadID:     &lead.ID,
		InstanceID: req.InstanceID,
		Phone:      req.Phone,
		Direction:  domain.MessageDirectionInbound,
		Body:       req.Body,
		SentAt:     sentAt,
		CreatedAt:  time.Now(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "whatsapp message ingested",
		zap.String("lead_id", lead.ID),
		zap.Bool("new_lead", newLead))

	return &dto.WebhookResponse{
		MessageID: message.ID,
		LeadID:    lead.ID,
		NewLead:   newLead,
	}, nil
}

func (s *whatsAppService) createLeadFromMessage(ctx context.Context, tenantID string, req *dto.WebhookMessageRequest) (*domain.Lead, error) {
	name := req.SenderName
	if name == "" {
		name = req.Phone
	}

	now := time.Now()
	lead := &domain.Lead{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Phone:     req.Phone,
		Source:    domain.LeadSourceWhatsApp,
		Interest:  req.Body,
		Stage:     domain.StageNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	lead.Score = s.scoring.Score(ctx, lead)

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// SendToLead sends an outbound message to a lead's phone and records it
func (s *whatsAppService) SendToLead(ctx context.Context, tenantID, leadID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	lead, err := s.leadRepo.GetByID(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	if lead.Phone == "" {
		return nil, ErrLeadHasNoPhone
	}

	if err := s.sender.SendText(ctx, lead.Phone, req.Body); err != nil {
		if errors.Is(err, gateway.ErrGatewayDisabled) {
			return nil, err
		}
		logger.ErrorCtx(ctx, "outbound whatsapp send failed",
			zap.String("lead_id", leadID), zap.Error(err))
		return nil, ErrGatewaySend
	}

	now := time.Now()
	message := &domain.WhatsAppMessage{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		LeadID:    &lead.ID,
		Phone:     lead.Phone,
		Direction: domain.MessageDirectionOutbound,
		Body:      req.Body,
		SentAt:    now,
		CreatedAt: now,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		// The message went out; losing the history row is logged, not fatal.
		logger.WarnCtx(ctx, "outbound message not recorded",
			zap.String("lead_id", leadID), zap.Error(err))
	}

	return s.toMessageResponse(message), nil
}

// History lists the stored conversation for a lead, oldest first
func (s *whatsAppService) History(ctx context.Context, tenantID, leadID string) ([]dto.MessageResponse, error) {
	lead, err := s.leadRepo.GetByID(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	messages, err := s.messageRepo.ListByLead(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, *s.toMessageResponse(message))
	}
	return responses, nil
}

// toMessageResponse converts domain.WhatsAppMessage to dto.MessageResponse
func (s *whatsAppService) toMessageResponse(m *domain.WhatsAppMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:         m.ID,
		LeadID:     m.LeadID,
		InstanceID: m.InstanceID,
		Phone:      m.Phone,
		Direction:  m.Direction,
		Body:       m.Body,
		SentAt:     m.SentAt.Format(time.RFC3339),
	}
}
