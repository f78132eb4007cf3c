package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"

	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaPublisherKeysByRide(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	b := models.Booking{ID: "b1", RideID: "r1", UserID: "u1", PassengerCount: 2, Status: models.BookingPending}
	if err := p.Publish(context.Background(), NewBookingEvent(BookingCreated, b, "req-1")); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if string(msg.Key) != "r1" {
		t.Fatalf("expected key r1, got %q", msg.Key)
	}

	var ev BookingEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		t.Fatalf("payload not json: %v", err)
	}
	if ev.Type != BookingCreated || ev.BookingID != "b1" || ev.PassengerCount != 2 || ev.RequestID != "req-1" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	sentinel := errors.New("broker down")
	p := &KafkaPublisher{writer: &fakeWriter{err: sentinel}}

	err := p.Publish(context.Background(), BookingEvent{Type: BookingCancelled, RideID: "r1"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}
