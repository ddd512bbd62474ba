package logger

import (
	"recruitledger/internal/config"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		cfg  config.LogConfig
		want zapcore.Level
	}{
		{config.LogConfig{Level: "debug", Format: "json"}, zapcore.DebugLevel},
		{config.LogConfig{Level: "warn", Format: "console"}, zapcore.WarnLevel},
		{config.LogConfig{}, zapcore.InfoLevel},
	}
	for _, tc := range cases {
		l, err := New(tc.cfg)
		if err != nil {
			t.Fatalf("new %+v: %v", tc.cfg, err)
		}
		if !l.Core().Enabled(tc.want) {
			t.Fatalf("%+v: expected %s enabled", tc.cfg, tc.want)
		}
		if tc.want > zapcore.DebugLevel && l.Core().Enabled(tc.want-1) {
			t.Fatalf("%+v: expected %s disabled", tc.cfg, tc.want-1)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Fatalf("expected invalid level error")
	}
}
