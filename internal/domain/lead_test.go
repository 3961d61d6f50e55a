package domain

import (
	"testing"
)

func TestIsValidStage(t *testing.T) {
	valid := []string{StageNew, StageContacted, StageQualified, StageVisit, StageProposal, StageWon, StageLost}
	for _, stage := range valid {
		if !IsValidStage(stage) {
			t.Errorf("IsValidStage(%q) = false, want true", stage)
		}
	}

	invalid := []string{"", "archived", "NEW", "closed"}
	for _, stage := range invalid {
		if IsValidStage(stage) {
			t.Errorf("IsValidStage(%q) = true, want false", stage)
		}
	}
}

func TestIsValidSource(t *testing.T) {
	valid := []string{LeadSourceWebsite, LeadSourceWhatsApp, LeadSourceReferral, LeadSourceManual}
	for _, source := range valid {
		if !IsValidSource(source) {
			t.Errorf("IsValidSource(%q) = false, want true", source)
		}
	}

	if IsValidSource("facebook") {
		t.Error("IsValidSource(\"facebook\") = true, want false")
	}
	if IsValidSource("") {
		t.Error("IsValidSource(\"\") = true, want false")
	}
}

func TestIsTerminalStage(t *testing.T) {
	if !IsTerminalStage(StageWon) {
		t.Error("won should be terminal")
	}
	if !IsTerminalStage(StageLost) {
		t.Error("lost should be terminal")
	}
	if IsTerminalStage(StageProposal) {
		t.Error("proposal should not be terminal")
	}
}

func TestLead_CanMoveTo(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		expected bool
	}{
		{"forward move", StageNew, StageContacted, true},
		{"skip stages", StageNew, StageProposal, true},
		{"backward move", StageQualified, StageContacted, true},
		{"into won", StageProposal, StageWon, true},
		{"into lost", StageContacted, StageLost, true},
		{"won reopens to new", StageWon, StageNew, true},
		{"lost reopens to new", StageLost, StageNew, true},
		{"won cannot jump to proposal", StageWon, StageProposal, false},
		{"lost cannot jump to contacted", StageLost, StageContacted, false},
		{"won cannot flip to lost", StageWon, StageLost, false},
		{"unknown target", StageNew, "archived", false},
		{"empty target", StageNew, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := &Lead{Stage: tt.from}
			if got := lead.CanMoveTo(tt.to); got != tt.expected {
				t.Errorf("CanMoveTo(%q) from %q = %v, want %v", tt.to, tt.from, got, tt.expected)
			}
		})
	}
}

func TestLead_HeuristicScore(t *testing.T) {
	budget := 350000.0
	zeroBudget := 0.0

	tests := []struct {
		name     string
		lead     Lead
		expected int
	}{
		{
			name:     "bare manual lead",
			lead:     Lead{Source: LeadSourceManual},
			expected: 15, // base 10 + manual 5
		},
		{
			name:     "website lead",
			lead:     Lead{Source: LeadSourceWebsite},
			expected: 25,
		},
		{
			name:     "whatsapp lead with phone",
			lead:     Lead{Source: LeadSourceWhatsApp, Phone: "+5511999999999"},
			expected: 45, // 10 + 20 + 15
		},
		{
			name: "referral with full contact and budget",
			lead: Lead{
				Source: LeadSourceReferral,
				Phone:  "+5511999999999",
				Email:  "buyer@example.com",
				Budget: &budget,
			},
			expected: 85, // 10 + 30 + 15 + 10 + 20
		},
		{
			name: "urgency keyword",
			lead: Lead{
				Source:   LeadSourceWebsite,
				Interest: "Apartamento urgente para mudar este mes",
			},
			expected: 35, // 10 + 15 + 10
		},
		{
			name: "keyword bonus applies once",
			lead: Lead{
				Source:   LeadSourceWebsite,
				Interest: "Pagamento a vista, urgente",
			},
			expected: 35,
		},
		{
			name:     "zero budget adds nothing",
			lead:     Lead{Source: LeadSourceManual, Budget: &zeroBudget},
			expected: 15,
		},
		{
			name: "clamped at 100",
			lead: Lead{
				Source:   LeadSourceReferral,
				Phone:    "+5511999999999",
				Email:    "buyer@example.com",
				Budget:   &budget,
				Interest: "urgente, pagamento a vista",
			},
			expected: 95, // 10 + 30 + 15 + 10 + 20 + 10
		},
		{
			name:     "unknown source scores base only",
			lead:     Lead{Source: "billboard"},
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.lead.HeuristicScore()
			if got != tt.expected {
				t.Errorf("HeuristicScore() = %d, want %d", got, tt.expected)
			}
			if got < 0 || got > 100 {
				t.Errorf("HeuristicScore() = %d, out of 0-100 range", got)
			}
		})
	}
}
