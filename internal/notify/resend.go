// Package notify delivers contact-form notifications to the site owner.
//
// Resend posts each stored contact message to the Resend email API
// (https://resend.com/docs/api-reference/emails/send-email). The body is
// composed as Markdown and rendered to HTML with goldmark; visitor text is
// escaped before rendering so it can never inject markup or formatting.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

// DefaultBaseURL is the public Resend API endpoint.
const DefaultBaseURL = "https://api.resend.com"

// ErrNotConfigured is returned by NewResend when a required setting is empty.
var ErrNotConfigured = errors.New("notify: resend not configured")

// ResendConfig holds the Resend credentials and addressing.
type ResendConfig struct {
	APIKey  string
	From    string
	To      []string
	BaseURL string        // defaults to DefaultBaseURL
	Timeout time.Duration // per-request; defaults to 10s when no client is given
}

// Resend sends contact notifications through the Resend HTTP API.
type Resend struct {
	cfg    ResendConfig
	client *http.Client
	md     goldmark.Markdown
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type emailResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// NewResend validates cfg and returns a notifier. httpClient may be nil.
func NewResend(cfg ResendConfig, httpClient *http.Client) (*Resend, error) {
	if cfg.APIKey == "" || cfg.From == "" || len(cfg.To) == 0 {
		return nil, ErrNotConfigured
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Resend{
		cfg:    cfg,
		client: httpClient,
		md:     goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
	}, nil
}

// NotifyContact emails m to the configured recipients. Non-2xx responses are
// returned as errors carrying the API's message.
func (r *Resend) NotifyContact(ctx context.Context, m domain.ContactMessage) error {
	body, err := r.render(m)
	if err != nil {
		return fmt.Errorf("notify: render: %w", err)
	}

	payload, err := json.Marshal(emailRequest{
		From:    r.cfg.From,
		To:      r.cfg.To,
		Subject: subject(m),
		HTML:    body,
		Text:    m.Message,
		ReplyTo: m.Email,
	})
	if err != nil {
		return fmt.Errorf("notify: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notify: request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: send: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("notify: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && er.Message != "" {
			return fmt.Errorf("notify: resend status %d: %s", resp.StatusCode, er.Message)
		}
		return fmt.Errorf("notify: resend status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var ok emailResponse
	_ = json.Unmarshal(raw, &ok)
	zerolog.Ctx(ctx).Debug().
		Str("email_id", ok.ID).
		Str("contact_id", m.ID).
		Msg("contact notification sent")
	return nil
}

// Close releases idle connections held by the underlying transport.
func (r *Resend) Close() {
	if r == nil || r.client == nil {
		return
	}
	r.client.CloseIdleConnections()
}

func (r *Resend) render(m domain.ContactMessage) (string, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "**From:** %s (%s)\n\n", escape(m.Name), escape(m.Email))
	fmt.Fprintf(&md, "**Received:** %s\n\n", m.CreatedAt.UTC().Format("2006-01-02 15:04 UTC"))
	for _, line := range strings.Split(m.Message, "\n") {
		md.WriteString("> ")
		md.WriteString(escape(strings.TrimRight(line, "\r")))
		md.WriteByte('\n')
	}
	if m.ID != "" {
		fmt.Fprintf(&md, "\n_Message id: %s_\n", escape(m.ID))
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(md.String()), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// subject keeps the visitor's name on a single header line.
func subject(m domain.ContactMessage) string {
	name := strings.Join(strings.Fields(m.Name), " ")
	if name == "" {
		name = "a visitor"
	}
	return "New contact message from " + name
}

// escape backslash-escapes every ASCII punctuation character so the text is
// rendered literally. goldmark then emits <, > and & as entities.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 && isPunct(byte(r)) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') ||
		(c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
