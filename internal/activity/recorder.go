// Package activity appends activity_logs rows and fans them out to a broker.
package activity

import (
	"context"
	"time"

	"hrdash/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Sink interface {
	InsertActivity(ctx context.Context, entry models.ActivityLog) error
}

type Publisher interface {
	Publish(ctx context.Context, entry models.ActivityLog) error
}

type Recorder struct {
	sink      Sink
	publisher Publisher
	log       zerolog.Logger
}

// NewRecorder builds a recorder. publisher may be nil.
func NewRecorder(sink Sink, publisher Publisher, logger zerolog.Logger) *Recorder {
	return &Recorder{sink: sink, publisher: publisher, log: logger}
}

// Record stores the entry and then publishes it. A publish failure is logged
// and does not fail the call; the row is already stored.
func (r *Recorder) Record(ctx context.Context, entry models.ActivityLog) error {
	if entry.ActivityID == "" {
		entry.ActivityID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := r.sink.InsertActivity(ctx, entry); err != nil {
		return err
	}
	if r.publisher == nil {
		return nil
	}
	if err := r.publisher.Publish(ctx, entry); err != nil {
		r.log.Warn().Err(err).Str("action", entry.Action).Str("activity_id", entry.ActivityID).Msg("publish activity")
	}
	return nil
}
