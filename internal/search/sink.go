package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkuznetsov/trendy_store/internal/models"
	"github.com/dkuznetsov/trendy_store/internal/notify"
)

// IndexSink lets product index updates ride the notification dispatcher,
// keeping catalog writes non-blocking.
type IndexSink struct {
	Client *Client
}

func (s *IndexSink) Deliver(ctx context.Context, job notify.Job) error {
	switch job.Kind {
	case notify.KindIndexProduct:
		var p models.Product
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return fmt.Errorf("search: decode product: %w", err)
		}
		return s.Client.IndexProduct(ctx, p)
	case notify.KindDeindexProduct:
		var payload notify.DeindexProductPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("search: decode payload: %w", err)
		}
		return s.Client.DeleteProduct(ctx, payload.ProductID)
	default:
		return fmt.Errorf("search: unexpected job kind %q", job.Kind)
	}
}
