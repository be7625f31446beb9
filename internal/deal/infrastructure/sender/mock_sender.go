package sender

import (
	"context"
	"log/slog"

	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

// MockSender 本地/测试环境使用，只落日志
type MockSender struct{}

func NewMockSender() domain.Sender { return &MockSender{} }

func (s *MockSender) Send(ctx context.Context, target string, subject string, content string) error {
	slog.InfoContext(ctx, "[NOTIFY] notification payload",
		"target", target,
		"subject", subject,
		"content", content,
	)
	return nil
}
