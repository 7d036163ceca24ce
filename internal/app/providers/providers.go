// Package providers defines the capability ports for payment, search and
// messaging side-effects, with mock and HTTP gateway implementations.
// Providers are resolved once at startup from configuration; there is no
// runtime registry.
package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/roamdine/platform/pkg/logger"
)

// Charge is the result of a payment charge.
type Charge struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Payment charges a customer. Implementations fail with a provider error when
// the gateway is unreachable or rejects the charge.
type Payment interface {
	Charge(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (Charge, error)
}

// Document is a record submitted for search indexing.
type Document struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Search indexes documents. Indexing requires an index name and a document id.
type Search interface {
	IndexDocument(ctx context.Context, index string, doc Document) error
}

// Messaging delivers a message to a destination. Destination and body must be
// non-empty.
type Messaging interface {
	Send(ctx context.Context, destination, body string, metadata map[string]string) error
}

// Config selects and configures the provider implementations. Recognized
// names are "mock" and "http"; an empty name means mock.
type Config struct {
	Payment      string `yaml:"payment" env:"PROVIDER_PAYMENT"`
	PaymentURL   string `yaml:"payment_url" env:"PROVIDER_PAYMENT_URL"`
	PaymentKey   string `yaml:"payment_key" env:"PROVIDER_PAYMENT_KEY"`
	Search       string `yaml:"search" env:"PROVIDER_SEARCH"`
	SearchURL    string `yaml:"search_url" env:"PROVIDER_SEARCH_URL"`
	SearchKey    string `yaml:"search_key" env:"PROVIDER_SEARCH_KEY"`
	Messaging    string `yaml:"messaging" env:"PROVIDER_MESSAGING"`
	MessagingURL string `yaml:"messaging_url" env:"PROVIDER_MESSAGING_URL"`
	MessagingKey string `yaml:"messaging_key" env:"PROVIDER_MESSAGING_KEY"`
}

// Set holds the resolved provider instances.
type Set struct {
	Payment   Payment
	Search    Search
	Messaging Messaging
}

// Resolve builds concrete providers from configuration. Outside production an
// unknown or empty name falls back to the mock with a warning; in production
// the payment provider must be explicitly configured and every named provider
// must resolve, otherwise startup fails.
func Resolve(cfg Config, environment string, client *http.Client, log *logger.Logger) (Set, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = logger.NewDefault("providers")
	}
	production := strings.EqualFold(environment, "production")

	var set Set

	switch name := normalize(cfg.Payment); name {
	case "", "mock":
		if production {
			return Set{}, fmt.Errorf("payment provider must be configured in production")
		}
		log.Warn("payment provider not configured; using mock")
		set.Payment = NewMockPayment()
	case "http":
		p, err := NewHTTPPayment(client, cfg.PaymentURL, cfg.PaymentKey, log)
		if err != nil {
			return Set{}, fmt.Errorf("configure payment provider: %w", err)
		}
		set.Payment = p
	default:
		return Set{}, fmt.Errorf("unknown payment provider %q", name)
	}

	switch name := normalize(cfg.Search); name {
	case "", "mock":
		if name == "" && production {
			log.Warn("search provider not configured; documents are indexed in memory only")
		}
		set.Search = NewMockSearch()
	case "http":
		p, err := NewHTTPSearch(client, cfg.SearchURL, cfg.SearchKey, log)
		if err != nil {
			return Set{}, fmt.Errorf("configure search provider: %w", err)
		}
		set.Search = p
	default:
		return Set{}, fmt.Errorf("unknown search provider %q", name)
	}

	switch name := normalize(cfg.Messaging); name {
	case "", "mock":
		if name == "" && production {
			log.Warn("messaging provider not configured; deliveries are recorded in memory only")
		}
		set.Messaging = NewMockMessaging()
	case "http":
		p, err := NewHTTPMessaging(client, cfg.MessagingURL, cfg.MessagingKey, log)
		if err != nil {
			return Set{}, fmt.Errorf("configure messaging provider: %w", err)
		}
		set.Messaging = p
	default:
		return Set{}, fmt.Errorf("unknown messaging provider %q", name)
	}

	return set, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
