package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/config"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/logger"
	"go.uber.org/zap"
)

// ErrGatewayDisabled is returned when no gateway URL is configured
var ErrGatewayDisabled = errors.New("whatsapp gateway not configured")

// WhatsAppSender sends text messages through the third-party gateway
type WhatsAppSender interface {
	SendText(ctx context.Context, phone, body string) error
}

// WhatsAppClient is an HTTP client for the WhatsApp gateway REST API
type WhatsAppClient struct {
	cfg        *config.WhatsAppConfig
	httpClient *http.Client
}

// NewWhatsAppClient creates a new WhatsAppClient
func NewWhatsAppClient(cfg *config.WhatsAppConfig) *WhatsAppClient {
	return &WhatsAppClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type sendTextPayload struct {
	Phone string `json:"phone"`
	Body  string `json:"body"`
}

// SendText posts a text message to the gateway, retrying transient failures
// with exponential backoff
func (c *WhatsAppClient) SendText(ctx context.Context, phone, body string) error {
	if !c.cfg.Enabled() {
		return ErrGatewayDisabled
	}

	payload, err := json.Marshal(sendTextPayload{Phone: phone, Body: body})
	if err != nil {
		return fmt.Errorf("failed to encode message payload: %w", err)
	}

	operation := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GatewayURL+"/messages/text", bytes.NewReader(payload))
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return struct{}{}, nil
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
			// Retrying cannot fix a rejected request
			return struct{}{}, backoff.Permanent(fmt.Errorf("gateway rejected message: status %d", resp.StatusCode))
		default:
			return struct{}{}, fmt.Errorf("gateway returned status %d", resp.StatusCode)
		}
	}

	_, err = backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(c.cfg.MaxRetries)),
		backoff.WithMaxElapsedTime(time.Minute),
	)
	if err != nil {
		logger.WarnCtx(ctx, "whatsapp gateway send failed",
			zap.String("phone", phone),
			zap.Error(err),
		)
		return err
	}

	return nil
}
