package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"shopzeo/internal/models"
)

// Event subjects
const (
	SubjectProductCreated   = "product.created"
	SubjectProductUpdated   = "product.updated"
	SubjectProductDeleted   = "product.deleted"
	SubjectProductsImported = "product.imported"
)

// ProductEvent is the payload published on product.* subjects
type ProductEvent struct {
	EventID   string      `json:"eventId"`
	EventType string      `json:"eventType"`
	Timestamp time.Time   `json:"timestamp"`
	ProductID string      `json:"productId,omitempty"`
	SkuID     string      `json:"skuId,omitempty"`
	Name      string      `json:"name,omitempty"`
	StoreID   string      `json:"storeId,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Publisher emits catalog change events over NATS. A Publisher with no
// connection (NATS disabled or unreachable) is valid and drops events.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS at natsURL. An empty URL disables event
// publishing; a connection failure is returned so the caller can decide
// to run without events.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	entry := logger.WithField("component", "events")

	if natsURL == "" {
		entry.Info("NATS_URL not set, event publishing disabled")
		return &Publisher{logger: entry}, nil
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("shopzeo-catalog"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}

	entry.WithField("url", natsURL).Info("Connected to NATS")
	return &Publisher{conn: conn, logger: entry}, nil
}

// Close drains the NATS connection
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}

// PublishProductCreated publishes a product.created event
func (p *Publisher) PublishProductCreated(ctx context.Context, product *models.Product) {
	p.publish(SubjectProductCreated, &ProductEvent{
		EventType: SubjectProductCreated,
		ProductID: product.ID.String(),
		SkuID:     product.SkuID,
		Name:      product.Name,
		StoreID:   product.StoreID.String(),
	})
}

// PublishProductUpdated publishes a product.updated event
func (p *Publisher) PublishProductUpdated(ctx context.Context, product *models.Product) {
	p.publish(SubjectProductUpdated, &ProductEvent{
		EventType: SubjectProductUpdated,
		ProductID: product.ID.String(),
		SkuID:     product.SkuID,
		Name:      product.Name,
		StoreID:   product.StoreID.String(),
	})
}

// PublishProductDeleted publishes a product.deleted event
func (p *Publisher) PublishProductDeleted(ctx context.Context, productID uuid.UUID) {
	p.publish(SubjectProductDeleted, &ProductEvent{
		EventType: SubjectProductDeleted,
		ProductID: productID.String(),
	})
}

// PublishProductsImported publishes the aggregate outcome of a bulk import
func (p *Publisher) PublishProductsImported(counts models.ImportCounts) {
	p.publish(SubjectProductsImported, &ProductEvent{
		EventType: SubjectProductsImported,
		Payload:   counts,
	})
}

func (p *Publisher) publish(subject string, event *ProductEvent) {
	if p == nil || p.conn == nil {
		return
	}

	event.EventID = uuid.New().String()
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to marshal event")
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to publish event")
		return
	}

	p.logger.WithFields(logrus.Fields{
		"subject":   subject,
		"eventId":   event.EventID,
		"productId": event.ProductID,
	}).Debug("Event published")
}
