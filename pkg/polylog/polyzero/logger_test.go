package polyzero_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/polylog/polyzero"
)

func TestZerologLogger_EventFields(t *testing.T) {
	tests := []struct {
		desc                   string
		logFn                  func(polylog.Event)
		expectedOutputContains string
	}{
		{
			desc:                   "Str",
			logFn:                  func(e polylog.Event) { e.Str("chain", "osmosis").Send() },
			expectedOutputContains: `"chain":"osmosis"`,
		},
		{
			desc:                   "Strs",
			logFn:                  func(e polylog.Event) { e.Strs("wallets", []string{"a", "b"}).Send() },
			expectedOutputContains: `"wallets":["a","b"]`,
		},
		{
			desc:                   "Bool",
			logFn:                  func(e polylog.Event) { e.Bool("mutex", true).Send() },
			expectedOutputContains: `"mutex":true`,
		},
		{
			desc:                   "Int",
			logFn:                  func(e polylog.Event) { e.Int("count", 3).Send() },
			expectedOutputContains: `"count":3`,
		},
		{
			desc:                   "Int64",
			logFn:                  func(e polylog.Event) { e.Int64("height", 42).Send() },
			expectedOutputContains: `"height":42`,
		},
		{
			desc:                   "Uint64",
			logFn:                  func(e polylog.Event) { e.Uint64("seq", 7).Send() },
			expectedOutputContains: `"seq":7`,
		},
		{
			desc:                   "Float64",
			logFn:                  func(e polylog.Event) { e.Float64("gas", 0.025).Send() },
			expectedOutputContains: `"gas":0.025`,
		},
		{
			desc:                   "Err",
			logFn:                  func(e polylog.Event) { e.Err(errors.New("boom")).Send() },
			expectedOutputContains: `"error":"boom"`,
		},
		{
			desc:                   "Dur",
			logFn:                  func(e polylog.Event) { e.Dur("took", 1500*time.Millisecond).Send() },
			expectedOutputContains: `"took":1500`,
		},
		{
			desc:                   "Fields",
			logFn:                  func(e polylog.Event) { e.Fields(map[string]any{"k": "v"}).Send() },
			expectedOutputContains: `"k":"v"`,
		},
		{
			desc:                   "Msg",
			logFn:                  func(e polylog.Event) { e.Msg("hello") },
			expectedOutputContains: `"message":"hello"`,
		},
		{
			desc:                   "Msgf",
			logFn:                  func(e polylog.Event) { e.Msgf("hello %s", "world") },
			expectedOutputContains: `"message":"hello world"`,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			var buf bytes.Buffer
			logger := polyzero.NewLogger(polyzero.WithOutput(&buf))

			test.logFn(logger.Info())

			require.Contains(t, buf.String(), test.expectedOutputContains)
			require.Contains(t, buf.String(), `"level":"info"`)
		})
	}
}

func TestZerologLogger_Levels(t *testing.T) {
	for _, level := range polyzero.Levels() {
		t.Run(level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := polyzero.NewLogger(
				polyzero.WithOutput(&buf),
				polyzero.WithLevel(zerolog.Level(level.Int())),
			)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Warn().Msg("warn")
			logger.Error().Msg("error")

			for _, lvl := range polyzero.Levels() {
				if lvl.Int() < level.Int() {
					require.NotContains(t, buf.String(), `"message":"`+lvl.String()+`"`)
				} else {
					require.Contains(t, buf.String(), `"message":"`+lvl.String()+`"`)
				}
			}
		})
	}
}

func TestZerologLogger_WithLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := polyzero.NewLogger(polyzero.WithOutput(&buf))

	logger.WithLevel(polyzero.WarnLevel).Msg("explicit")

	require.Contains(t, buf.String(), `"level":"warn"`)
	require.Contains(t, buf.String(), `"message":"explicit"`)
}

func TestZerologLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := polyzero.NewLogger(polyzero.WithOutput(&buf)).
		With("component", "wallet_repo")

	logger.Info().Msg("with fields")

	require.Contains(t, buf.String(), `"component":"wallet_repo"`)
}

func TestZerologLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := polyzero.NewLogger(polyzero.WithOutput(&buf)).With("label", "ctx_logger")

	ctx := logger.WithContext(context.Background())
	polylog.Ctx(ctx).Info().Msg("from context")

	require.Contains(t, buf.String(), `"label":"ctx_logger"`)
	require.Contains(t, buf.String(), `"message":"from context"`)
}

func TestCtx_DefaultLogger(t *testing.T) {
	require.NotNil(t, polylog.Ctx(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input         string
		expectedLevel zerolog.Level
		expectErr     bool
	}{
		{input: "debug", expectedLevel: zerolog.DebugLevel},
		{input: "INFO", expectedLevel: zerolog.InfoLevel},
		{input: "", expectedLevel: zerolog.InfoLevel},
		{input: "warn", expectedLevel: zerolog.WarnLevel},
		{input: "error", expectedLevel: zerolog.ErrorLevel},
		{input: "verbose", expectErr: true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			level, err := polyzero.ParseLevel(test.input)
			if test.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expectedLevel, level)
		})
	}
}
