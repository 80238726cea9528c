package media

// DefaultMergeAudioCodec is the codec the audio stream is re-encoded to when merging
const DefaultMergeAudioCodec = "aac"

// ExtractAudioRequest describes copying the audio stream of InputPath into OutputPath.
// Paths are opaque; they are handed to the tool as single arguments.
type ExtractAudioRequest struct {
	InputPath  string
	OutputPath string
}

// MergeRequest describes muxing the video stream of VideoPath with the audio
// stream of AudioPath into OutputPath
type MergeRequest struct {
	VideoPath  string
	AudioPath  string
	OutputPath string
}
