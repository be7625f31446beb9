package mq

import (
	"context"
	"errors"
	"testing"
	"time"
)

type queueSource struct {
	msgs []*Message
}

func (s *queueSource) ReadMessage(ctx context.Context) (*Message, error) {
	if len(s.msgs) == 0 {
		return nil, context.Canceled
	}
	m := s.msgs[0]
	s.msgs = s.msgs[1:]
	return m, nil
}

type recordingSink struct {
	sent []*Message
}

func (s *recordingSink) Send(_ context.Context, originalMessage *Message, _ string, _ error) error {
	s.sent = append(s.sent, originalMessage)
	return nil
}

func testMessage() *Message {
	return &Message{Topic: "deal.submitted", Key: "DEAL-1", Value: []byte(`{}`), Time: time.Now()}
}

func TestDispatch_RetriesThenDeadLetters(t *testing.T) {
	var attempts int
	handler := HandlerFunc(func(ctx context.Context, msg *Message) error {
		attempts++
		return errors.New("boom")
	})
	dlq := &recordingSink{}
	r := NewRunner(&queueSource{}, handler, dlq, 3, time.Millisecond)

	if err := r.Dispatch(context.Background(), testMessage()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("handler called %d times, want 3", attempts)
	}
	if len(dlq.sent) != 1 {
		t.Fatalf("dead letter got %d messages, want 1", len(dlq.sent))
	}
	if dlq.sent[0].Key != "DEAL-1" {
		t.Fatalf("dead letter key = %s, want original key", dlq.sent[0].Key)
	}
}

func TestDispatch_SucceedsOnRetry(t *testing.T) {
	var attempts int
	handler := HandlerFunc(func(ctx context.Context, msg *Message) error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	})
	dlq := &recordingSink{}
	r := NewRunner(&queueSource{}, handler, dlq, 3, time.Millisecond)

	if err := r.Dispatch(context.Background(), testMessage()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("handler called %d times, want 2", attempts)
	}
	if len(dlq.sent) != 0 {
		t.Fatalf("dead letter got %d messages, want 0", len(dlq.sent))
	}
}

func TestDispatch_ContextCancelStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	handler := HandlerFunc(func(ctx context.Context, msg *Message) error {
		cancel()
		return errors.New("boom")
	})
	dlq := &recordingSink{}
	r := NewRunner(&queueSource{}, handler, dlq, 5, time.Second)

	if err := r.Dispatch(ctx, testMessage()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(dlq.sent) != 0 {
		t.Fatalf("cancelled dispatch must not dead-letter, got %d", len(dlq.sent))
	}
}

func TestRun_DrainsSourceUntilCancel(t *testing.T) {
	src := &queueSource{msgs: []*Message{testMessage(), testMessage()}}
	var handled int
	handler := HandlerFunc(func(ctx context.Context, msg *Message) error {
		handled++
		return nil
	})
	r := NewRunner(src, handler, &recordingSink{}, 1, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := r.Run(ctx); !errors.Is(err, context.Canceled) && err != nil {
		t.Fatalf("Run: %v", err)
	}
	if handled != 2 {
		t.Fatalf("handled %d messages, want 2", handled)
	}
}
