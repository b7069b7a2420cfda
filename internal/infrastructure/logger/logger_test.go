package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := New(Config{Level: tt.level, Format: "json"})
			if got := log.GetLevel(); got != tt.want {
				t.Errorf("New(%q).GetLevel() = %s, want %s", tt.level, got, tt.want)
			}
		})
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	// Console output must not panic on construction or first write.
	log := New(Config{Level: "error", Format: "console"})
	log.Debug().Msg("filtered out")
}
