package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ogurasousui/codex-employee-directory/internal/platform/config"
	"github.com/rs/zerolog"
)

// ServiceName はログの service フィールドに出力される名前です。
const ServiceName = "employee-directory"

// New は logging 設定から zerolog.Logger を生成します。w が nil の場合は標準出力へ書き込みます。
func New(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logger: parse level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	if w == nil {
		w = os.Stdout
	}
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Str("service", ServiceName).Logger(), nil
}
