package mq

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Handler 单条消息处理能力，每种消费者实现一个
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// HandlerFunc 函数适配器
type HandlerFunc func(ctx context.Context, msg *Message) error

func (f HandlerFunc) Handle(ctx context.Context, msg *Message) error { return f(ctx, msg) }

// messageSource Runner 的消息来源，便于测试注入
type messageSource interface {
	ReadMessage(ctx context.Context) (*Message, error)
}

// deadLetterSink 重试耗尽后的终点，失败消息绝不静默丢弃
type deadLetterSink interface {
	Send(ctx context.Context, originalMessage *Message, reason string, cause error) error
}

// Runner 消费循环：逐条拉取，失败按递增退避重试，
// 重试耗尽送入死信队列后继续消费下一条。
type Runner struct {
	source   messageSource
	handler  Handler
	dlq      deadLetterSink
	attempts int
	backoff  time.Duration
}

// NewRunner 创建消费循环。attempts 含首次调用，backoff 每次递增一个步长。
func NewRunner(source messageSource, handler Handler, dlq deadLetterSink, attempts int, backoff time.Duration) *Runner {
	if attempts < 1 {
		attempts = 1
	}
	return &Runner{
		source:   source,
		handler:  handler,
		dlq:      dlq,
		attempts: attempts,
		backoff:  backoff,
	}
}

// Run 阻塞消费直到 ctx 取消
func (r *Runner) Run(ctx context.Context) error {
	for {
		msg, err := r.source.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			slog.ErrorContext(ctx, "Failed to read Kafka message", "error", err)
			continue
		}

		if err := r.Dispatch(ctx, msg); err != nil {
			return err
		}
	}
}

// Dispatch 带重试地处理一条消息；只有 ctx 取消会向上返回错误
func (r *Runner) Dispatch(ctx context.Context, msg *Message) error {
	var lastErr error

	for attempt := 1; attempt <= r.attempts; attempt++ {
		lastErr = r.handler.Handle(ctx, msg)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		slog.WarnContext(ctx, "message handling failed",
			"topic", msg.Topic,
			"key", msg.Key,
			"attempt", attempt,
			"error", lastErr,
		)

		if attempt < r.attempts {
			select {
			case <-time.After(time.Duration(attempt) * r.backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	slog.ErrorContext(ctx, "message retries exhausted, routing to dead letter",
		"topic", msg.Topic,
		"key", msg.Key,
		"error", lastErr,
	)
	if err := r.dlq.Send(ctx, msg, "retries exhausted", lastErr); err != nil {
		slog.ErrorContext(ctx, "dead letter publish failed", "topic", msg.Topic, "key", msg.Key, "error", err)
	}
	return nil
}
