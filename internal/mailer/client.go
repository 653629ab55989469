// Package mailer delivers contact and demo form submissions through the
// EmailJS REST API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	// DefaultEndpoint is the public EmailJS API host.
	DefaultEndpoint = "https://api.emailjs.com"
	defaultTimeout  = 10 * time.Second
	sendPath        = "/api/v1.0/email/send"
)

// DeliveryError is returned when the email service rejects a submission.
type DeliveryError struct {
	Status int
	Body   string
}

func (e *DeliveryError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("mailer: delivery failed with status %d", e.Status)
	}
	return fmt.Sprintf("mailer: delivery failed with status %d: %s", e.Status, e.Body)
}

// Config identifies the EmailJS service and template used for every message.
type Config struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
}

// Receipt describes an accepted submission.
type Receipt struct {
	ID       string
	Kind     string
	Simulate bool
}

// Client sends template parameters to EmailJS. Without a service id it logs
// the submission and reports success, which keeps local development usable.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
	newID  func() string
}

// NewClient constructs a Client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		newID:  func() string { return ulid.Make().String() },
	}
}

// Configured reports whether submissions are delivered for real.
func (c *Client) Configured() bool {
	return c != nil && strings.TrimSpace(c.cfg.ServiceID) != "" && strings.TrimSpace(c.cfg.TemplateID) != ""
}

// SendContact delivers a general inquiry.
func (c *Client) SendContact(ctx context.Context, form ContactForm) (Receipt, error) {
	return c.Send(ctx, KindContact, ContactParams(form))
}

// SendDemo delivers a demo request.
func (c *Client) SendDemo(ctx context.Context, form DemoForm) (Receipt, error) {
	return c.Send(ctx, KindDemo, DemoParams(form))
}

// Send posts a flat parameter map to the configured template. There is no
// retry; callers surface failures to the user.
func (c *Client) Send(ctx context.Context, kind string, params map[string]string) (Receipt, error) {
	rec := Receipt{ID: c.newID(), Kind: kind}
	log := c.logger.With(zap.String("submissionID", rec.ID), zap.String("kind", kind))

	if !c.Configured() {
		rec.Simulate = true
		log.Info("email service not configured; submission accepted without delivery",
			zap.String("requestType", params["request_type"]),
		)
		return rec, nil
	}

	payload, err := json.Marshal(sendPayload{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("mailer: encode payload: %w", err)
	}
	endpoint, err := url.JoinPath(c.cfg.Endpoint, sendPath)
	if err != nil {
		return Receipt{}, fmt.Errorf("mailer: endpoint: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("email delivery failed", zap.Error(err))
		return Receipt{}, fmt.Errorf("mailer: send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		derr := &DeliveryError{Status: resp.StatusCode, Body: drainError(resp.Body)}
		log.Warn("email delivery rejected", zap.Int("status", derr.Status), zap.String("body", derr.Body))
		return Receipt{}, derr
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	log.Info("email delivered", zap.Duration("latency", time.Since(start)))
	return rec, nil
}

type sendPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
