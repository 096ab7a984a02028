package activity

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hrdash/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type fakeSink struct {
	entries []models.ActivityLog
	err     error
}

func (f *fakeSink) InsertActivity(ctx context.Context, entry models.ActivityLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakePublisher struct {
	published []models.ActivityLog
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, entry models.ActivityLog) error {
	f.published = append(f.published, entry)
	return f.err
}

func TestRecordStoresThenPublishes(t *testing.T) {
	sink := &fakeSink{}
	pub := &fakePublisher{}
	r := NewRecorder(sink, pub, zerolog.Nop())

	if err := r.Record(context.Background(), models.ActivityLog{ActorID: "a", Action: "leave.created", TargetType: "leaves"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(sink.entries) != 1 || len(pub.published) != 1 {
		t.Fatalf("expected one stored and one published entry")
	}
	if sink.entries[0].ActivityID == "" || sink.entries[0].CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp filled, got %+v", sink.entries[0])
	}
	if pub.published[0].ActivityID != sink.entries[0].ActivityID {
		t.Fatalf("expected same entry published")
	}
}

func TestRecordPublishFailureIsNotFatal(t *testing.T) {
	sink := &fakeSink{}
	pub := &fakePublisher{err: errors.New("broker down")}
	r := NewRecorder(sink, pub, zerolog.Nop())
	if err := r.Record(context.Background(), models.ActivityLog{Action: "role.changed"}); err != nil {
		t.Fatalf("expected publish failure to be swallowed, got %v", err)
	}
	if len(sink.entries) != 1 {
		t.Fatalf("expected entry stored")
	}
}

func TestRecordSinkFailureSkipsPublish(t *testing.T) {
	sink := &fakeSink{err: errors.New("db down")}
	pub := &fakePublisher{}
	r := NewRecorder(sink, pub, zerolog.Nop())
	if err := r.Record(context.Background(), models.ActivityLog{Action: "role.changed"}); err == nil {
		t.Fatalf("expected sink error")
	}
	if len(pub.published) != 0 {
		t.Fatalf("expected nothing published")
	}
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func TestRabbitPublisherRoutesByAction(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{exchange: "hr.activity", channel: ch}

	entry := models.ActivityLog{ActivityID: "act-1", ActorID: "u1", Action: "leave.approved", TargetType: "leaves", TargetID: "l1"}
	if err := p.Publish(context.Background(), entry); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if ch.exchange != "hr.activity" || ch.key != "leave.approved" {
		t.Fatalf("unexpected routing: %s %s", ch.exchange, ch.key)
	}
	if ch.msg.ContentType != "application/json" || ch.msg.MessageId != "act-1" || ch.msg.DeliveryMode != amqp.Persistent {
		t.Fatalf("unexpected message: %+v", ch.msg)
	}
	var decoded models.ActivityLog
	if err := json.Unmarshal(ch.msg.Body, &decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if decoded.TargetID != "l1" {
		t.Fatalf("unexpected body: %+v", decoded)
	}
	p.Close()
}
