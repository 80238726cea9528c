package media

import "context"

// Verifier checks that an external media tool is present
type Verifier interface {
	// Verify returns true if the executable could be launched, whatever its exit status
	Verify(ctx context.Context, executable string) bool
}

// AudioExtractor defines the audio extraction operation.
// It returns true when the tool exited 0, false when it exited non-zero,
// and an error matching ErrLaunchFailure when it could not be started.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, executable string, req ExtractAudioRequest) (bool, error)
}

// Merger defines the audio/video merge operation, with the same result contract as AudioExtractor
type Merger interface {
	MergeAudioVideo(ctx context.Context, executable string, req MergeRequest) (bool, error)
}

// Tool is a port implemented by infrastructure adapters for an external media tool
type Tool interface {
	Verifier
	AudioExtractor
	Merger
}
