// Package notify は社員名簿からの利用者向けメッセージをログとリクエスト単位のバッファへ届けます。
package notify

import (
	"context"
	"sync"

	"github.com/ogurasousui/codex-employee-directory/internal/core/employee"
	"github.com/rs/zerolog"
)

// Message は利用者へ表示する 1 件のメッセージです。
type Message struct {
	Severity employee.Severity
	Text     string
}

// Buffer はリクエスト中に発生したメッセージを保持します。
type Buffer struct {
	mu       sync.Mutex
	messages []Message
}

// Messages は受け取った順にメッセージのコピーを返します。
func (b *Buffer) Messages() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Message, len(b.messages))
	copy(out, b.messages)
	return out
}

func (b *Buffer) add(m Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, m)
}

type bufferContextKey struct{}

// WithBuffer は ctx に新しい Buffer を関連付けます。
func WithBuffer(ctx context.Context) (context.Context, *Buffer) {
	b := &Buffer{}
	return context.WithValue(ctx, bufferContextKey{}, b), b
}

func bufferFrom(ctx context.Context) *Buffer {
	b, _ := ctx.Value(bufferContextKey{}).(*Buffer)
	return b
}

// Notifier は employee.Notifier の実装です。
type Notifier struct{}

var _ employee.Notifier = Notifier{}

// Notify はメッセージをログに出力し、ctx に Buffer があればそこへ追加します。
func (Notifier) Notify(ctx context.Context, severity employee.Severity, text string) {
	event := zerolog.Ctx(ctx).Info()
	if severity == employee.SeverityError {
		event = zerolog.Ctx(ctx).Warn()
	}
	event.Str("severity", string(severity)).Msg(text)

	if b := bufferFrom(ctx); b != nil {
		b.add(Message{Severity: severity, Text: text})
	}
}
