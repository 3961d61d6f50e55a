package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
	"github.com/laxautomacoes/crmLAX-sub001/internal/dto"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/config"
)

// fakeInvitationRepo is an in-memory InvitationRepository
type fakeInvitationRepo struct {
	invitations map[string]*domain.Invitation
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: make(map[string]*domain.Invitation)}
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	f.invitations[inv.ID] = inv
	return nil
}

func (f *fakeInvitationRepo) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	inv, ok := f.invitations[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvitationRepo) ListPending(ctx context.Context, tenantID string) ([]*domain.Invitation, error) {
	var out []*domain.Invitation
	for _, inv := range f.invitations {
		if inv.TenantID == tenantID && inv.Status == domain.InvitationStatusPending {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) UpdateStatus(ctx context.Context, id, status string, acceptedAt *time.Time) error {
	inv, ok := f.invitations[id]
	if !ok {
		return errors.New("invitation not found")
	}
	inv.Status = status
	inv.AcceptedAt = acceptedAt
	return nil
}

func (f *fakeInvitationRepo) ExistsPendingByEmail(ctx context.Context, tenantID, email string) (bool, error) {
	for _, inv := range f.invitations {
		if inv.TenantID == tenantID && inv.Email == email && inv.Status == domain.InvitationStatusPending {
			return true, nil
		}
	}
	return false, nil
}

// fakeProfileRepo is an in-memory ProfileRepository
type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, tenantID, email string) (*domain.Profile, error) {
	for _, p := range f.profiles {
		if p.TenantID == tenantID && p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range f.profiles {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) SoftDelete(ctx context.Context, id string) error {
	delete(f.profiles, id)
	return nil
}

func newTestInvitationService() (InvitationService, *fakeInvitationRepo, *fakeProfileRepo, *fakeNotifier) {
	invRepo := newFakeInvitationRepo()
	profileRepo := newFakeProfileRepo()
	notifier := newFakeNotifier()
	svc := NewInvitationService(invRepo, profileRepo, notifier, config.JWTConfig{
		Secret:        "invitation-test-secret",
		Issuer:        "crmlax",
		InvitationTTL: 7 * 24 * time.Hour,
	})
	return svc, invRepo, profileRepo, notifier
}

func TestInvitationService_InviteAndAccept(t *testing.T) {
	svc, invRepo, profileRepo, notifier := newTestInvitationService()
	ctx := context.Background()

	resp, token, err := svc.Invite(ctx, "tenant-1", "owner-1", &dto.CreateInvitationRequest{
		Email: "Agent@Example.COM",
		Role:  domain.RoleAgent,
	})
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
	if resp.Email != "agent@example.com" {
		t.Errorf("email = %q, want lowercased", resp.Email)
	}
	if resp.Status != domain.InvitationStatusPending {
		t.Errorf("status = %q, want pending", resp.Status)
	}

	profile, err := svc.Accept(ctx, &dto.AcceptInvitationRequest{
		Token:    token,
		FullName: "New Agent",
		Phone:    "+5511988887777",
	})
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	if profile.TenantID != "tenant-1" {
		t.Errorf("profile tenant = %q, want tenant-1", profile.TenantID)
	}
	if profile.Email != "agent@example.com" {
		t.Errorf("profile email = %q, want invitation email", profile.Email)
	}
	if profile.Role != domain.RoleAgent {
		t.Errorf("profile role = %q, want agent", profile.Role)
	}
	if len(profileRepo.profiles) != 1 {
		t.Errorf("profiles stored = %d, want 1", len(profileRepo.profiles))
	}

	stored := invRepo.invitations[resp.ID]
	if stored.Status != domain.InvitationStatusAccepted {
		t.Errorf("invitation status = %q, want accepted", stored.Status)
	}
	if stored.AcceptedAt == nil {
		t.Error("accepted_at not recorded")
	}

	// The inviter gets notified about the acceptance.
	if len(notifier.sent) != 1 || notifier.sent[0] != "owner-1" {
		t.Errorf("inviter notifications = %v, want [owner-1]", notifier.sent)
	}
}

func TestInvitationService_Invite_EmailAlreadyMember(t *testing.T) {
	svc, _, profileRepo, _ := newTestInvitationService()

	profileRepo.profiles["p1"] = &domain.Profile{
		ID:       "p1",
		TenantID: "tenant-1",
		Email:    "agent@example.com",
		Role:     domain.RoleAgent,
	}

	_, _, err := svc.Invite(context.Background(), "tenant-1", "owner-1", &dto.CreateInvitationRequest{
		Email: "agent@example.com",
		Role:  domain.RoleAgent,
	})
	if !errors.Is(err, ErrEmailAlreadyMember) {
		t.Errorf("expected ErrEmailAlreadyMember, got %v", err)
	}
}

func TestInvitationService_Invite_DuplicatePending(t *testing.T) {
	svc, _, _, _ := newTestInvitationService()
	ctx := context.Background()

	req := &dto.CreateInvitationRequest{Email: "agent@example.com", Role: domain.RoleAgent}
	if _, _, err := svc.Invite(ctx, "tenant-1", "owner-1", req); err != nil {
		t.Fatalf("first Invite failed: %v", err)
	}

	_, _, err := svc.Invite(ctx, "tenant-1", "owner-1", req)
	if !errors.Is(err, ErrInvitationPending) {
		t.Errorf("expected ErrInvitationPending, got %v", err)
	}
}

func TestInvitationService_Accept_GarbageToken(t *testing.T) {
	svc, _, _, _ := newTestInvitationService()

	_, err := svc.Accept(context.Background(), &dto.AcceptInvitationRequest{
		Token:    "not-a-jwt",
		FullName: "Someone",
	})
	if !errors.Is(err, ErrInvitationToken) {
		t.Errorf("expected ErrInvitationToken, got %v", err)
	}
}

func TestInvitationService_Accept_WrongSecret(t *testing.T) {
	svc, _, _, _ := newTestInvitationService()

	other := NewInvitationService(newFakeInvitationRepo(), newFakeProfileRepo(), newFakeNotifier(), config.JWTConfig{
		Secret: "a-different-secret",
		Issuer: "crmlax",
	})
	_, token, err := other.Invite(context.Background(), "tenant-1", "owner-1", &dto.CreateInvitationRequest{
		Email: "agent@example.com",
		Role:  domain.RoleAgent,
	})
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	_, err = svc.Accept(context.Background(), &dto.AcceptInvitationRequest{
		Token:    token,
		FullName: "Someone",
	})
	if !errors.Is(err, ErrInvitationToken) {
		t.Errorf("expected ErrInvitationToken, got %v", err)
	}
}

func TestInvitationService_Accept_Expired(t *testing.T) {
	svc, invRepo, _, _ := newTestInvitationService()
	ctx := context.Background()

	resp, token, err := svc.Invite(ctx, "tenant-1", "owner-1", &dto.CreateInvitationRequest{
		Email: "agent@example.com",
		Role:  domain.RoleAgent,
	})
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	// Expire the stored invitation while the token itself is still parseable.
	invRepo.invitations[resp.ID].ExpiresAt = time.Now().Add(-time.Hour)

	_, err = svc.Accept(ctx, &dto.AcceptInvitationRequest{Token: token, FullName: "Someone"})
	if !errors.Is(err, ErrInvitationExpired) {
		t.Errorf("expected ErrInvitationExpired, got %v", err)
	}
}

func TestInvitationService_Accept_Revoked(t *testing.T) {
	svc, _, _, _ := newTestInvitationService()
	ctx := context.Background()

	resp, token, err := svc.Invite(ctx, "tenant-1", "owner-1", &dto.CreateInvitationRequest{
		Email: "agent@example.com",
		Role:  domain.RoleAgent,
	})
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	if err := svc.Revoke(ctx, "tenant-1", resp.ID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	_, err = svc.Accept(ctx, &dto.AcceptInvitationRequest{Token: token, FullName: "Someone"})
	if !errors.Is(err, ErrInvitationRevoked) {
		t.Errorf("expected ErrInvitationRevoked, got %v", err)
	}
}

func TestInvitationService_Revoke(t *testing.T) {
	svc, invRepo, _, _ := newTestInvitationService()
	ctx := context.Background()

	resp, _, err := svc.Invite(ctx, "tenant-1", "owner-1", &dto.CreateInvitationRequest{
		Email: "agent@example.com",
		Role:  domain.RoleAgent,
	})
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	t.Run("wrong tenant", func(t *testing.T) {
		if err := svc.Revoke(ctx, "tenant-2", resp.ID); !errors.Is(err, ErrInvitationNotFound) {
			t.Errorf("expected ErrInvitationNotFound, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if err := svc.Revoke(ctx, "tenant-1", "missing"); !errors.Is(err, ErrInvitationNotFound) {
			t.Errorf("expected ErrInvitationNotFound, got %v", err)
		}
	})

	t.Run("pending invitation", func(t *testing.T) {
		if err := svc.Revoke(ctx, "tenant-1", resp.ID); err != nil {
			t.Fatalf("Revoke failed: %v", err)
		}
		if invRepo.invitations[resp.ID].Status != domain.InvitationStatusRevoked {
			t.Error("invitation not marked revoked")
		}
	})

	t.Run("already revoked", func(t *testing.T) {
		if err := svc.Revoke(ctx, "tenant-1", resp.ID); !errors.Is(err, ErrInvitationNotPending) {
			t.Errorf("expected ErrInvitationNotPending, got %v", err)
		}
	})
}

func TestInvitationService_ListPending(t *testing.T) {
	svc, _, _, _ := newTestInvitationService()
	ctx := context.Background()

	if _, _, err := svc.Invite(ctx, "tenant-1", "owner-1", &dto.CreateInvitationRequest{
		Email: "a@example.com", Role: domain.RoleAgent,
	}); err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	if _, _, err := svc.Invite(ctx, "tenant-2", "owner-2", &dto.CreateInvitationRequest{
		Email: "b@example.com", Role: domain.RoleAgent,
	}); err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	pending, err := svc.ListPending(ctx, "tenant-1")
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	if pending[0].Email != "a@example.com" {
		t.Errorf("email = %q, want a@example.com", pending[0].Email)
	}
}
