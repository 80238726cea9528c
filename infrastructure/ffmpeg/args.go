package ffmpeg

import "projection-video-3d/domain/media"

// VersionArgs asks the tool to print its version and exit
func VersionArgs() []string {
	return []string{"-version"}
}

// ExtractAudioArgs builds the argument list for copying the audio stream out of a media file
func ExtractAudioArgs(req media.ExtractAudioRequest) []string {
	return []string{
		"-y", // Overwrite output file if it exists
		"-i", req.InputPath,
		"-vn",             // No video
		"-acodec", "copy", // Copy audio without re-encoding
		req.OutputPath,
	}
}

// MergeArgs builds the argument list for muxing a video stream with a re-encoded audio stream
func MergeArgs(req media.MergeRequest) []string {
	return []string{
		"-y",
		"-i", req.VideoPath,
		"-i", req.AudioPath,
		"-c:v", "copy",
		"-c:a", media.DefaultMergeAudioCodec,
		req.OutputPath,
	}
}
