package dto

import "time"

// WebhookMessageRequest represents an inbound message pushed by the gateway
type WebhookMessageRequest struct {
	InstanceID string    `json:"instance_id" binding:"required"`
	Phone      string    `json:"phone" binding:"required,max=30"`
	SenderName string    `json:"sender_name" binding:"omitempty,max=255"`
	Body       string    `json:"body" binding:"required,max=4096"`
	Timestamp  time.Time `json:"timestamp" binding:"omitempty"`
}

// WebhookResponse acknowledges a processed webhook delivery
type WebhookResponse struct {
	MessageID string `json:"message_id"`
	LeadID    string `json:"lead_id"`
	NewLead   bool   `json:"new_lead"`
}

// MessageResponse represents a stored WhatsApp message
type MessageResponse struct {
	ID         string `json:"id"`
	LeadID     *string `json:"lead_id,omitempty"`
	InstanceID string `json:"instance_id"`
	Phone      string `json:"phone"`
	Direction  string `json:"direction"`
	Body       string `json:"body"`
	SentAt     string `json:"sent_at"`
}

// SendMessageRequest represents a request to send an outbound message to a lead
type SendMessageRequest struct {
	Body string `json:"body" binding:"required,max=4096"`
}
