package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/internal/repository"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/config"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/logger"
)

var (
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationPending    = errors.New("a pending invitation already exists for this email")
	ErrInvitationExpired    = errors.New("invitation has expired")
	ErrInvitationRevoked    = errors.New("invitation is no longer acceptable")
	ErrInvitationToken      = errors.New("invalid invitation token")
	ErrEmailAlreadyMember   = errors.New("a profile with this email already exists in the tenant")
	ErrInvitationNotPending = errors.New("only pending invitations can be revoked")
)

// DefaultInvitationTTL is how long an invitation stays acceptable when no
// TTL is configured.
const DefaultInvitationTTL = 7 * 24 * time.Hour

// invitationClaims are embedded in the signed invitation token
type invitationClaims struct {
	InvitationID string `json:"invitation_id"`
	TenantID     string `json:"tenant_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

// InvitationService manages team invitations: issuing signed tokens,
// accepting them into profiles, and revoking pending ones.
type InvitationService interface {
	// Invite creates a pending invitation and returns it with its token
	Invite(ctx context.Context, tenantID, invitedBy string, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, string, error)
	// Accept redeems an invitation token, creating a profile
	Accept(ctx context.Context, req *dto.AcceptInvitationRequest) (*dto.ProfileResponse, error)
	// Revoke cancels a pending invitation
	Revoke(ctx context.Context, tenantID, id string) error
	// ListPending lists pending invitations for a tenant
	ListPending(ctx context.Context, tenantID string) ([]dto.InvitationResponse, error)
}

type invitationService struct {
	invitationRepo repository.InvitationRepository
	profileRepo    repository.ProfileRepository
	notification   NotificationService
	jwtCfg         config.JWTConfig
	ttl            time.Duration
}

// NewInvitationService creates a new InvitationService
func NewInvitationService(invitationRepo repository.InvitationRepository, profileRepo repository.ProfileRepository, notification NotificationService, jwtCfg config.JWTConfig) InvitationService {
	ttl := jwtCfg.InvitationTTL
	if ttl <= 0 {
		ttl = DefaultInvitationTTL
	}
	return &invitationService{
		invitationRepo: invitationRepo,
		profileRepo:    profileRepo,
		notification:   notification,
		jwtCfg:         jwtCfg,
		ttl:            ttl,
	}
}

// Invite creates a pending invitation and returns it with its token
func (s *invitationService) Invite(ctx context.Context, tenantID, invitedBy string, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.profileRepo.GetByEmail(ctx, tenantID, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailAlreadyMember
	}

	pending, err := s.invitationRepo.ExistsPendingByEmail(ctx, tenantID, email)
	if err != nil {
		return nil, "", err
	}
	if pending {
		return nil, "", ErrInvitationPending
	}

	now := time.Now()
	invitation := &domain.Invitation{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Email:     email,
		Role:      req.Role,
		Status:    domain.InvitationStatusPending,
		InvitedBy: invitedBy,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	token, err := s.signToken(invitation)
	if err != nil {
		return nil, "", err
	}
	invitation.Token = token

	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, "", err
	}

	return s.toInvitationResponse(invitation), token, nil
}

// Accept redeems an invitation token, creating a profile
func (s *invitationService) Accept(ctx context.Context, req *dto.AcceptInvitationRequest) (*dto.ProfileResponse, error) {
	claims, err := s.parseToken(req.Token)
	if err != nil {
		return nil, ErrInvitationToken
	}

	invitation, err := s.invitationRepo.GetByID(ctx, claims.InvitationID)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, ErrInvitationNotFound
	}

	now := time.Now()
	if invitation.IsExpired(now) {
		return nil, ErrInvitationExpired
	}
	if !invitation.IsAcceptable(now) {
		return nil, ErrInvitationRevoked
	}

	profile := &domain.Profile{
		ID:        uuid.New().String(),
		TenantID:  invitation.TenantID,
		FullName:  req.FullName,
		Email:     invitation.Email,
		Phone:     req.Phone,
		Role:      invitation.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	if err := s.invitationRepo.UpdateStatus(ctx, invitation.ID, domain.InvitationStatusAccepted, &now); err != nil {
		return nil, err
	}

	s.notifyInviter(ctx, invitation, profile)
	return s.toProfileResponse(profile), nil
}

// Revoke cancels a pending invitation
func (s *invitationService) Revoke(ctx context.Context, tenantID, id string) error {
	invitation, err := s.invitationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invitation == nil || invitation.TenantID != tenantID {
		return ErrInvitationNotFound
	}
	if invitation.Status != domain.InvitationStatusPending {
		return ErrInvitationNotPending
	}

	return s.invitationRepo.UpdateStatus(ctx, id, domain.InvitationStatusRevoked, nil)
}

// ListPending lists pending invitations for a tenant
func (s *invitationService) ListPending(ctx context.Context, tenantID string) ([]dto.InvitationResponse, error) {
	invitations, err := s.invitationRepo.ListPending(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		responses = append(responses, *s.toInvitationResponse(inv))
	}
	return responses, nil
}

func (s *invitationService) signToken(inv *domain.Invitation) (string, error) {
	claims := invitationClaims{
		InvitationID: inv.ID,
		TenantID:     inv.TenantID,
		Email:        inv.Email,
		Role:         inv.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtCfg.Issuer,
			Subject:   inv.Email,
			ExpiresAt: jwt.NewNumericDate(inv.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(inv.CreatedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

func (s *invitationService) parseToken(tokenString string) (*invitationClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &invitationClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvitationToken
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*invitationClaims)
	if !ok || !token.Valid || claims.InvitationID == "" {
		return nil, ErrInvitationToken
	}
	return claims, nil
}

func (s *invitationService) notifyInviter(ctx context.Context, inv *domain.Invitation, profile *domain.Profile) {
	if inv.InvitedBy == "" {
		return
	}
	body := profile.FullName + " (" + profile.Email + ") joined the team"
	if err := s.notification.Notify(ctx, inv.TenantID, inv.InvitedBy,
		domain.NotificationKindInvitation, "Invitation accepted", body); err != nil {
		logger.WarnCtx(ctx, "invitation acceptance notification failed",
			zap.String("invitation_id", inv.ID), zap.Error(err))
	}
}

// toInvitationResponse converts domain.Invitation to dto.InvitationResponse
func (s *invitationService) toInvitationResponse(inv *domain.Invitation) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:        inv.ID,
		TenantID:  inv.TenantID,
		Email:     inv.Email,
		Role:      inv.Role,
		Status:    inv.Status,
		InvitedBy: inv.InvitedBy,
		ExpiresAt: inv.ExpiresAt.Format(time.RFC3339),
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
	}
}

// toProfileResponse converts domain.Profile to dto.ProfileResponse
func (s *invitationService) toProfileResponse(profile *domain.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:        profile.ID,
		TenantID:  profile.TenantID,
		FullName:  profile.FullName,
		Email:     profile.Email,
		Phone:     profile.Phone,
		Role:      profile.Role,
		IsActive:  profile.IsActive,
		CreatedAt: profile.CreatedAt.Format(time.RFC3339),
	}
}
