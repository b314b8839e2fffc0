package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sender dispatches one verification code to one destination.
type Sender interface {
	Send(ctx context.Context, destination, code string) error
}

// SMSSender posts verification SMS to an HTTP gateway. Outbound calls
// are rate-limited so a burst of login attempts cannot exhaust the
// gateway quota.
type SMSSender struct {
	gatewayURL string
	apiKey     string
	from       string
	messages   *Messages
	client     *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewSMSSender(gatewayURL, apiKey, from string, messages *Messages, logger *zap.Logger) *SMSSender {
	return &SMSSender{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		from:       from,
		messages:   messages,
		client:     &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
		logger:     logger.Named("sms"),
	}
}

type smsRequest struct {
	To   string `json:"to"`
	From string `json:"from"`
	Body string `json:"body"`
}

func (s *SMSSender) Send(ctx context.Context, destination, code string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("sms rate limit: %w", err)
	}

	payload, err := json.Marshal(smsRequest{
		To:   destination,
		From: s.from,
		Body: s.messages.SMSBody(code),
	})
	if err != nil {
		return fmt.Errorf("marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, string(body))
	}

	s.logger.Info("verification sms dispatched", zap.String("to", MaskPhone(destination)))

	return nil
}
