package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeResaleReconcile = "resale:reconcile"

// ResaleReconcilePayload identifies a resale purchase whose bookkeeping
// writes (offer claim, original-booking transfer) may be stale. Keyed on the
// buyer's new booking so the reconciliation is idempotent.
type ResaleReconcilePayload struct {
	OfferID           string `json:"offerId"`
	OriginalBookingID string `json:"originalBookingId"`
	NewBookingID      string `json:"newBookingId"`
	BuyerID           string `json:"buyerId"`

	// Compensate marks a task whose only job is to cancel the buyer's
	// booking after a definitively lost claim whose compensating write
	// failed. The offer and original booking are left alone.
	Compensate bool `json:"compensate,omitempty"`
}

// NewResaleReconcileTask builds the reconcile task with retry options.
func NewResaleReconcileTask(payload ResaleReconcilePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeResaleReconcile, b)
	opts := []asynq.Option{
		asynq.MaxRetry(10),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// Enqueuer abstracts the task queue so services can be tested without Redis.
type Enqueuer interface {
	EnqueueResaleReconcile(ctx context.Context, payload ResaleReconcilePayload) error
}

// AsynqEnqueuer implements Enqueuer on top of an asynq client.
type AsynqEnqueuer struct {
	Client *asynq.Client
}

func (e *AsynqEnqueuer) EnqueueResaleReconcile(ctx context.Context, payload ResaleReconcilePayload) error {
	task, opts, err := NewResaleReconcileTask(payload)
	if err != nil {
		return err
	}
	_, err = e.Client.EnqueueContext(ctx, task, opts...)
	return err
}
