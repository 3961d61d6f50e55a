package domain

import "time"

// WhatsAppMessage represents a message exchanged through the gateway
type WhatsAppMessage struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	LeadID     *string   `json:"lead_id,omitempty"`
	InstanceID string    `json:"instance_id"`
	Phone      string    `json:"phone"`
	Direction  string    `json:"direction"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Message direction constants
const (
	MessageDirectionInbound  = "inbound"
	MessageDirectionOutbound = "outbound"
)
