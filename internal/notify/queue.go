package notify

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

type Kind string

const (
	KindOrderConfirmation Kind = "order_confirmation"
	KindLowStockAlert     Kind = "low_stock_alert"
	KindBulkEmail         Kind = "bulk_email"
	KindIndexProduct      Kind = "index_product"
	KindDeindexProduct    Kind = "deindex_product"
)

type Job struct {
	ID      uuid.UUID       `json:"id"`
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Queue accepts best-effort jobs. Enqueue never blocks the caller on
// delivery; a returned error means the job was not accepted at all.
type Queue interface {
	Enqueue(ctx context.Context, kind Kind, payload any) error
}

// Sink delivers an accepted job to its destination (broker, index, ...).
type Sink interface {
	Deliver(ctx context.Context, job Job) error
}

type OrderConfirmationPayload struct {
	OrderID     uint   `json:"order_id"`
	UserID      uint   `json:"user_id"`
	TotalAmount string `json:"total_amount"`
	Status      string `json:"status"`
}

type LowStockPayload struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
}

type BulkEmailPayload struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type DeindexProductPayload struct {
	ProductID uint `json:"product_id"`
}
