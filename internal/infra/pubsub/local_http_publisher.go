package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	localSubscription   = "projects/local/subscriptions/order-status-sub"
	localPublishTimeout = 5 * time.Second
)

// localHTTPPublisher pushes events straight to a notifier running locally, in
// the envelope Pub/Sub push subscriptions deliver.
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// PushMessage mirrors the envelope Google Pub/Sub uses when pushing to HTTP endpoints
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		OrderingKey string            `json:"orderingKey,omitempty"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewLocalHTTPPublisher creates a publisher for the given push endpoint.
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: localPublishTimeout},
		logger:     logger,
	}
}

// PublishOrderStatusChanged posts the event wrapped in a push envelope
func (p *localHTTPPublisher) PublishOrderStatusChanged(ctx context.Context, event *entity.OrderStatusChanged) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	push := PushMessage{Subscription: localSubscription}
	push.Message.Data = base64.StdEncoding.EncodeToString(eventData)
	push.Message.MessageID = uuid.NewString()
	push.Message.OrderingKey = event.OrderID.String()
	push.Message.PublishTime = event.ChangedAt.UTC().Format(time.RFC3339Nano)
	push.Message.Attributes = eventAttributes(event)

	body, err := json.Marshal(push)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return errors.Errorf("notifier rejected order %s event with status %d", event.OrderID, resp.StatusCode)
	}

	p.logger.Debug("Order status event pushed",
		slog.String("endpoint", p.endpoint),
		slog.String("order_id", event.OrderID.String()),
		slog.String("to", event.To.String()),
	)

	return nil
}

// Close is a no-op; requests are not pooled beyond the default transport.
func (p *localHTTPPublisher) Close() error {
	return nil
}
