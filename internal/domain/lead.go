package domain

import (
	"strings"
	"time"
)

// Lead represents a prospective customer tracked through the sales pipeline
type Lead struct {
	ID                string                 `json:"id"`
	TenantID          string                 `json:"tenant_id"`
	AssignedProfileID *string                `json:"assigned_profile_id,omitempty"`
	Name              string                 `json:"name"`
	Email             string                 `json:"email,omitempty"`
	Phone             string                 `json:"phone,omitempty"`
	Source            string                 `json:"source"`
	Interest          string                 `json:"interest,omitempty"`
	Budget            *float64               `json:"budget,omitempty"`
	Stage             string                 `json:"stage"`
	Score             int                    `json:"score"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
	DeletedAt         *time.Time             `json:"deleted_at,omitempty"`
}

// Lead source constants
const (
	LeadSourceWebsite  = "website"
	LeadSourceWhatsApp = "whatsapp"
	LeadSourceReferral = "referral"
	LeadSourceManual   = "manual"
)

// Pipeline stage constants
const (
	StageNew       = "new"
	StageContacted = "contacted"
	StageQualified = "qualified"
	StageVisit     = "visit"
	StageProposal  = "proposal"
	StageWon       = "won"
	StageLost      = "lost"
)

var validStages = map[string]bool{
	StageNew:       true,
	StageContacted: true,
	StageQualified: true,
	StageVisit:     true,
	StageProposal:  true,
	StageWon:       true,
	StageLost:      true,
}

// IsValidStage reports whether the stage name is a known pipeline stage
func IsValidStage(stage string) bool {
	return validStages[stage]
}

// IsValidSource reports whether the source is a known lead origin
func IsValidSource(source string) bool {
	switch source {
	case LeadSourceWebsite, LeadSourceWhatsApp, LeadSourceReferral, LeadSourceManual:
		return true
	}
	return false
}

// IsTerminalStage reports whether the stage closes the pipeline for a lead
func IsTerminalStage(stage string) bool {
	return stage == StageWon || stage == StageLost
}

// CanMoveTo reports whether the lead may transition to the target stage.
// Terminal stages only leave via an explicit reopen to "new".
func (l *Lead) CanMoveTo(target string) bool {
	if !IsValidStage(target) {
		return false
	}
	if IsTerminalStage(l.Stage) {
		return target == StageNew
	}
	return true
}

// HeuristicScore computes the rule-based score for the lead, clamped to 0-100.
// Used as the baseline when no external scoring model is configured.
func (l *Lead) HeuristicScore() int {
	score := 10

	switch l.Source {
	case LeadSourceReferral:
		score += 30
	case LeadSourceWhatsApp:
		score += 20
	case LeadSourceWebsite:
		score += 15
	case LeadSourceManual:
		score += 5
	}

	if l.Phone != "" {
		score += 15
	}
	if l.Email != "" {
		score += 10
	}
	if l.Budget != nil && *l.Budget > 0 {
		score += 20
	}

	interest := strings.ToLower(l.Interest)
	for _, kw := range []string{"urgente", "urgent", "cash", "vista", "financiado"} {
		if strings.Contains(interest, kw) {
			score += 10
			break
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
