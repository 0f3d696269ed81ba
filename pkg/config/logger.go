package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// "log.level" -> OV_LOG_LEVEL
var envKeyReplacer = strings.NewReplacer(".", "_")

// NewLogger 根据 log.level / log.format 构造 slog.Logger
func NewLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log.level"))); err != nil {
		return nil, fmt.Errorf("invalid log.level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}

	switch format := viper.GetString("log.format"); format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log.format %q", format)
	}
}
