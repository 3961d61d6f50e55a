package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/config"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/logger"
)

// ScoringService estimates how promising a lead is, on a 0-100 scale.
//
// When an external scoring endpoint is configured it is consulted first;
// any failure there falls back to the rule-based heuristic, so scoring
// never blocks a lead write.
type ScoringService interface {
	// Score returns a 0-100 score for the lead
	Score(ctx context.Context, lead *domain.Lead) int
}

type scoringService struct {
	cfg    config.ScoringConfig
	client *http.Client
}

// NewScoringService creates a new ScoringService
func NewScoringService(cfg config.ScoringConfig) ScoringService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &scoringService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Score returns a 0-100 score for the lead
func (s *scoringService) Score(ctx context.Context, lead *domain.Lead) int {
	if s.cfg.URL == "" {
		return lead.HeuristicScore()
	}

	score, err := s.scoreExternal(ctx, lead)
	if err != nil {
		logger.WarnCtx(ctx, "external scoring failed, using heuristic",
			zap.String("lead_id", lead.ID), zap.Error(err))
		return lead.HeuristicScore()
	}
	return score
}

type scoringRequest struct {
	Source   string   `json:"source"`
	Interest string   `json:"interest,omitempty"`
	Budget   *float64 `json:"budget,omitempty"`
	HasPhone bool     `json:"has_phone"`
	HasEmail bool     `json:"has_email"`
}

type scoringResponse struct {
	Score int `json:"score"`
}

func (s *scoringService) scoreExternal(ctx context.Context, lead *domain.Lead) (int, error) {
	payload, err := json.Marshal(scoringRequest{
		Source:   lead.Source,
		Interest: lead.Interest,
		Budget:   lead.Budget,
		HasPhone: lead.Phone != "",
		HasEmail: lead.Email != "",
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("scoring endpoint returned status %d", resp.StatusCode)
	}

	var out scoringResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	if out.Score < 0 || out.Score > 100 {
		return 0, fmt.Errorf("scoring endpoint returned out-of-range score %d", out.Score)
	}
	return out.Score, nil
}
