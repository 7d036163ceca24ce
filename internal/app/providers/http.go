package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/roamdine/platform/internal/app/metrics"
	"github.com/roamdine/platform/internal/errors"
	"github.com/roamdine/platform/pkg/logger"
)

// HTTPPayment charges through an external payment gateway over HTTP.
type HTTPPayment struct {
	client   *http.Client
	endpoint string
	apiKey   string
	log      *logger.Logger
}

var _ Payment = (*HTTPPayment)(nil)

// NewHTTPPayment validates the endpoint and builds the gateway client.
func NewHTTPPayment(client *http.Client, endpoint, apiKey string, log *logger.Logger) (*HTTPPayment, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("payment endpoint is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logger.NewDefault("payment-provider")
	}
	return &HTTPPayment{client: client, endpoint: endpoint, apiKey: apiKey, log: log}, nil
}

func (p *HTTPPayment) Charge(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (Charge, error) {
	body, err := postJSON(ctx, p.client, p.endpoint, p.apiKey, map[string]any{
		"amount_cents": amountCents,
		"currency":     currency,
		"metadata":     metadata,
	})
	if err != nil {
		metrics.RecordProviderCall("payment", "error")
		p.log.WithError(err).Warn("payment charge failed")
		return Charge{}, errors.Provider("payment", err)
	}

	charge := Charge{
		ID:     gjson.GetBytes(body, "id").String(),
		Status: gjson.GetBytes(body, "status").String(),
	}
	if charge.ID == "" {
		metrics.RecordProviderCall("payment", "error")
		return Charge{}, errors.Provider("payment", fmt.Errorf("gateway response missing charge id"))
	}
	if charge.Status != "succeeded" {
		metrics.RecordProviderCall("payment", "declined")
		p.log.WithField("charge_id", charge.ID).
			WithField("status", charge.Status).
			Warn("charge not succeeded")
		return Charge{}, errors.Provider("payment", fmt.Errorf("charge %s %s", charge.ID, charge.Status))
	}
	metrics.RecordProviderCall("payment", "ok")
	return charge, nil
}

// HTTPSearch submits documents to an external index over HTTP.
type HTTPSearch struct {
	client   *http.Client
	endpoint string
	apiKey   string
	log      *logger.Logger
}

var _ Search = (*HTTPSearch)(nil)

// NewHTTPSearch validates the endpoint and builds the index client.
func NewHTTPSearch(client *http.Client, endpoint, apiKey string, log *logger.Logger) (*HTTPSearch, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("search endpoint is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logger.NewDefault("search-provider")
	}
	return &HTTPSearch{client: client, endpoint: endpoint, apiKey: apiKey, log: log}, nil
}

func (p *HTTPSearch) IndexDocument(ctx context.Context, index string, doc Document) error {
	if strings.TrimSpace(index) == "" || strings.TrimSpace(doc.ID) == "" {
		return errors.Provider("search", fmt.Errorf("index and document id are required"))
	}
	_, err := postJSON(ctx, p.client, p.endpoint, p.apiKey, map[string]any{
		"index":    index,
		"document": doc,
	})
	if err != nil {
		metrics.RecordProviderCall("search", "error")
		p.log.WithError(err).WithField("index", index).Warn("index document failed")
		return errors.Provider("search", err)
	}
	metrics.RecordProviderCall("search", "ok")
	return nil
}

// HTTPMessaging delivers messages through an external gateway over HTTP.
type HTTPMessaging struct {
	client   *http.Client
	endpoint string
	apiKey   string
	log      *logger.Logger
}

var _ Messaging = (*HTTPMessaging)(nil)

// NewHTTPMessaging validates the endpoint and builds the gateway client.
func NewHTTPMessaging(client *http.Client, endpoint, apiKey string, log *logger.Logger) (*HTTPMessaging, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("messaging endpoint is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logger.NewDefault("messaging-provider")
	}
	return &HTTPMessaging{client: client, endpoint: endpoint, apiKey: apiKey, log: log}, nil
}

func (p *HTTPMessaging) Send(ctx context.Context, destination, body string, metadata map[string]string) error {
	if strings.TrimSpace(destination) == "" {
		return errors.Provider("messaging", fmt.Errorf("destination is required"))
	}
	if strings.TrimSpace(body) == "" {
		return errors.Provider("messaging", fmt.Errorf("body is required"))
	}
	_, err := postJSON(ctx, p.client, p.endpoint, p.apiKey, map[string]any{
		"destination": destination,
		"body":        body,
		"metadata":    metadata,
	})
	if err != nil {
		metrics.RecordProviderCall("messaging", "error")
		p.log.WithError(err).Warn("message delivery failed")
		return errors.Provider("messaging", err)
	}
	metrics.RecordProviderCall("messaging", "ok")
	return nil
}

func postJSON(ctx context.Context, client *http.Client, endpoint, apiKey string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
