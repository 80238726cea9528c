package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestManager_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		want    string
		wantErr error
	}{
		{name: "ffmpeg path", key: "ffmpeg.path", value: "/opt/ffmpeg", want: "/opt/ffmpeg"},
		{name: "direction normalized", key: "projection.direction", value: "DOWN", want: "down"},
		{name: "key case-insensitive", key: " Projection.Codec ", value: "avc1", want: "avc1"},
		{name: "timeout", key: "ffmpeg.verify_timeout_seconds", value: "12", want: "12"},
		{name: "log level", key: "logging.level", value: "Debug", want: "debug"},
		{name: "unknown key", key: "email.from", value: "x", wantErr: ErrUnknownKey},
		{name: "bad direction", key: "projection.direction", value: "left", wantErr: ErrInvalidValue},
		{name: "bad timeout", key: "ffmpeg.verify_timeout_seconds", value: "-1", wantErr: ErrInvalidValue},
		{name: "bad codec", key: "projection.codec", value: "h264x", wantErr: ErrInvalidValue},
		{name: "empty path", key: "ffmpeg.path", value: "  ", wantErr: ErrInvalidValue},
		{name: "bad log level", key: "logging.level", value: "chatty", wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			mgr := NewManager(Default(), path)

			err := mgr.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Set() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, err := mgr.Get(tt.key)
			if err != nil || got != tt.want {
				t.Errorf("Get() = (%q, %v), want %q", got, err, tt.want)
			}

			saved, err := Load(path)
			if err != nil {
				t.Fatalf("Set() should save the file: %v", err)
			}
			if v, _ := NewManager(saved, path).Get(tt.key); v != tt.want {
				t.Errorf("saved value = %q, want %q", v, tt.want)
			}
		})
	}
}

func TestKeys_Sorted(t *testing.T) {
	keys := Keys()
	if len(keys) != 6 {
		t.Fatalf("Keys() returned %d keys, want 6", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Errorf("Keys() not sorted: %v", keys)
		}
	}
}
