package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInit_Level(t *testing.T) {
	Init("debug")
	if !L().Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected debug to be enabled")
	}

	Init("bogus")
	if L().Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected an unknown level to fall back to info")
	}
	if !L().Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected info to be enabled")
	}
	if Log == nil {
		t.Fatal("Log should be set after Init")
	}
}
