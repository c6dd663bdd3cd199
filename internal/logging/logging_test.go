package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name       string
		verbose    bool
		dev        bool
		wantDebug  bool
		wantInfoOn bool
	}{
		{"production", false, false, false, true},
		{"production verbose", true, false, true, true},
		{"development", false, true, false, true},
		{"development verbose", true, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.verbose, tt.dev)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer func() { _ = logger.Sync() }()

			core := logger.Core()
			if got := core.Enabled(zapcore.DebugLevel); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := core.Enabled(zapcore.InfoLevel); got != tt.wantInfoOn {
				t.Errorf("info enabled = %v, want %v", got, tt.wantInfoOn)
			}
		})
	}
}
