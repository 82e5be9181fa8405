package command_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/261018-go-pkg-subjekt/internal/command"
	"github.com/lwmacct/261018-go-pkg-subjekt/internal/config"
	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/resolvable"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		enabled slog.Level
		hidden  slog.Level
	}{
		{name: "debug", cfg: config.LogConfig{Level: "debug"}, enabled: slog.LevelDebug, hidden: slog.LevelDebug - 1},
		{name: "warn", cfg: config.LogConfig{Level: "WARN"}, enabled: slog.LevelWarn, hidden: slog.LevelInfo},
		{name: "unknown defaults to info", cfg: config.LogConfig{Level: "loud"}, enabled: slog.LevelInfo, hidden: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := command.NewLogger(tt.cfg, &bytes.Buffer{})
			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Enabled(context.Background(), tt.hidden))
		})
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	command.NewLogger(config.LogConfig{Level: "info", Format: "json"}, &buf).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	command.NewLogger(config.LogConfig{Level: "info", Format: "text"}, &buf).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello k=v")
}

func TestResolvableOptions(t *testing.T) {
	r, err := resolvable.New("<% a %> ${{ b }}", command.ResolvableOptions(config.ExprConfig{Prefix: "<%", Suffix: "%>"})...)
	require.NoError(t, err)
	assert.Equal(t, []resolvable.RawExpression{{Source: "a"}}, r.Expressions())

	_, err = resolvable.New("<% %>", command.ResolvableOptions(config.ExprConfig{Prefix: "<%", Suffix: "%>", RejectEmpty: true})...)
	require.ErrorIs(t, err, resolvable.ErrEmptyExpression)
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, config.DefaultConfig(), command.Defaults)
	assert.Equal(t, resolvable.DefaultPrefix, command.Defaults.Expr.Prefix)
}
