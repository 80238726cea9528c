package media

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"
)

func TestLaunchError_Is(t *testing.T) {
	err := &LaunchError{Executable: "/nope/ffmpeg", Err: exec.ErrNotFound}

	if !errors.Is(err, ErrLaunchFailure) {
		t.Error("expected LaunchError to match ErrLaunchFailure")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Error("expected LaunchError to unwrap to the underlying error")
	}

	wrapped := fmt.Errorf("extract audio: %w", err)
	if !IsLaunchFailure(wrapped) {
		t.Error("expected wrapped LaunchError to be a launch failure")
	}

	var le *LaunchError
	if !errors.As(wrapped, &le) || le.Executable != "/nope/ffmpeg" {
		t.Errorf("errors.As() = %+v, want executable /nope/ffmpeg", le)
	}
}

func TestIsLaunchFailure_OtherErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"nil", nil},
		{"plain error", errors.New("boom")},
		{"wrapped plain error", fmt.Errorf("outer: %w", errors.New("inner"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsLaunchFailure(tt.err) {
				t.Errorf("IsLaunchFailure(%v) = true, want false", tt.err)
			}
		})
	}
}

func TestLaunchError_Error(t *testing.T) {
	err := &LaunchError{Executable: "ffmpeg", Err: errors.New("permission denied")}
	want := `launch "ffmpeg": permission denied`
	if got := err.Error(); got != want {
		t.Errorf("LaunchError.Error() = %q, want %q", got, want)
	}
}

func TestCompletion_Success(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{0, true},
		{1, false},
		{255, false},
		{-1, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			if got := (Completion{ExitCode: tt.code}).Success(); got != tt.want {
				t.Errorf("Completion{%d}.Success() = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
