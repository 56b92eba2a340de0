package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lavacar_booking/internal/domain/entities"
	appconfig "lavacar_booking/internal/infrastructure/config"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
)

const (
	DefaultEmailJSURL = "https://api.emailjs.com/api/v1.0/email/send"
	breakerFailures   = 5
)

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// EmailJSClient delivers template emails through the EmailJS REST API. After
// repeated failures the breaker opens and sends fail fast until it half-opens.
type EmailJSClient struct {
	apiURL     string
	serviceID  string
	publicKey  string
	privateKey string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[struct{}]
}

var _ interfaces.INotifier = (*EmailJSClient)(nil)

func NewEmailJSClient(cfg appconfig.Email, httpClient *http.Client) *EmailJSClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	apiURL := strings.TrimSpace(cfg.APIURL)
	if apiURL == "" {
		apiURL = DefaultEmailJSURL
	}
	return &EmailJSClient{
		apiURL:     apiURL,
		serviceID:  strings.TrimSpace(cfg.ServiceID),
		publicKey:  strings.TrimSpace(cfg.PublicKey),
		privateKey: strings.TrimSpace(cfg.PrivateKey),
		httpClient: httpClient,
		breaker: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:        "emailjs",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logrus.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("[notification][emailjs] circuit breaker state change")
			},
		}),
	}
}

func (c *EmailJSClient) Send(ctx context.Context, templateID, recipient string, vars map[string]string) error {
	if c.serviceID == "" {
		return &entities.NotificationError{TemplateID: templateID, Recipient: recipient, Err: entities.MissingConfig("EMAILJS_SERVICE_ID")}
	}
	if c.publicKey == "" {
		return &entities.NotificationError{TemplateID: templateID, Recipient: recipient, Err: entities.MissingConfig("EMAILJS_PUBLIC_KEY")}
	}

	params := make(map[string]string, len(vars)+1)
	for k, v := range vars {
		params[k] = v
	}
	params["to_email"] = recipient

	body, err := json.Marshal(emailJSRequest{
		ServiceID:      c.serviceID,
		TemplateID:     templateID,
		UserID:         c.publicKey,
		AccessToken:    c.privateKey,
		TemplateParams: params,
	})
	if err != nil {
		return &entities.NotificationError{TemplateID: templateID, Recipient: recipient, Err: err}
	}

	_, err = c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.post(ctx, body)
	})
	if err != nil {
		return &entities.NotificationError{TemplateID: templateID, Recipient: recipient, Err: err}
	}
	return nil
}

func (c *EmailJSClient) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("emailjs responded %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
