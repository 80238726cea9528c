package media

import (
	"context"

	"projection-video-3d/infrastructure/ffmpeg"
)

// Package-level bindings backed by the os/exec adapter. Each call blocks until
// the subprocess exits; there is no shared state between calls.

// Verify reports whether the ffmpeg executable at path can be launched
func Verify(executable string) bool {
	return NewService(ffmpeg.NewAdapter()).Verify(context.Background(), executable)
}

// ExtractAudio runs `<executable> -y -i <input> -vn -acodec copy <output>`
func ExtractAudio(executable, inputPath, outputPath string) (bool, error) {
	return NewService(ffmpeg.NewAdapter()).ExtractAudio(context.Background(), executable, inputPath, outputPath)
}

// MergeAudioVideo runs `<executable> -y -i <video> -i <audio> -c:v copy -c:a aac <output>`
func MergeAudioVideo(executable, videoPath, audioPath, outputPath string) (bool, error) {
	return NewService(ffmpeg.NewAdapter()).MergeAudioVideo(context.Background(), executable, videoPath, audioPath, outputPath)
}
