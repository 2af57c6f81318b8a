package stt

import "context"
import "io"

// TranscriptSegment is one timestamped utterance with its recognition
// confidence
type TranscriptSegment struct {
	Text       string  `json:"text"`
	Timestamp  float64 `json:"timestamp"` // Seconds from recording start
	Duration   float64 `json:"duration_seconds"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
}

// TranscriptionResult is the transcript artifact consumed by scoring. It is
// optional throughout the pipeline: a nil result means audio-only scoring.
type TranscriptionResult struct {
	Text     string              `json:"text"`
	Segments []TranscriptSegment `json:"segments"`
}

// Transcriber converts recorded audio into a transcript. Implementations must
// honor context cancellation by discarding any partial transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (*TranscriptionResult, error)
}
