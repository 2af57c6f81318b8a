package stt

import (
	"context"
	"fmt"
	"io"
	"time"

	listenv1rest "github.com/deepgram/deepgram-go-sdk/v3/pkg/api/listen/v1/rest"
	listenv1interfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/api/listen/v1/rest/interfaces"
	interfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/interfaces"
	listenClient "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/listen"

	"github.com/rehearseiq/feedback-engine/internal/config"
	"github.com/rehearseiq/feedback-engine/internal/observability"
	"github.com/rehearseiq/feedback-engine/internal/resilience"
)

// DeepgramClient implements Transcriber using Deepgram's pre-recorded API
type DeepgramClient struct {
	config         *config.Config
	circuitBreaker *resilience.CircuitBreaker
	retryConfig    *resilience.RetryConfig
}

// NewDeepgramClient creates a new Deepgram pre-recorded transcription client
func NewDeepgramClient(cfg *config.Config) *DeepgramClient {
	return &DeepgramClient{
		config: cfg,
		circuitBreaker: resilience.NewCircuitBreaker(
			"deepgram",
			cfg.CircuitBreakerMaxFailures,
			time.Duration(cfg.CircuitBreakerResetTimeout)*time.Second,
		),
		retryConfig: &resilience.RetryConfig{
			MaxAttempts:       cfg.RetryMaxAttempts,
			InitialBackoff:    time.Duration(cfg.RetryInitialBackoff) * time.Millisecond,
			MaxBackoff:        5 * time.Second,
			BackoffMultiplier: 2.0,
		},
	}
}

// Transcribe sends the recorded audio to Deepgram and maps the response into
// a TranscriptionResult. Utterance timestamps become transcript segments.
// A cancelled context discards any partial transcript.
func (d *DeepgramClient) Transcribe(ctx context.Context, audio io.Reader) (*TranscriptionResult, error) {
	if !d.config.TranscriptionEnabled() {
		return nil, fmt.Errorf("deepgram API key is not configured")
	}

	logger := observability.GetLogger()
	start := time.Now()

	tOptions := &interfaces.PreRecordedTranscriptionOptions{
		Model:      d.config.DeepgramModel,
		Language:   d.config.DeepgramLanguage,
		Punctuate:  true,
		Utterances: true, // Timestamped utterances become transcript segments
	}

	var response *listenv1interfaces.PreRecordedResponse
	err := resilience.Retry(ctx, func() error {
		return d.circuitBreaker.Call(func() error {
			client := listenClient.NewREST(d.config.DeepgramAPIKey, &interfaces.ClientOptions{})
			dg := listenv1rest.New(client)

			res, err := dg.FromStream(ctx, audio, tOptions)
			if err != nil {
				return fmt.Errorf("deepgram request failed: %w", err)
			}
			response = res
			return nil
		})
	}, d.retryConfig, func(err error) bool {
		// Cancellation is final; everything else is worth another attempt
		return ctx.Err() == nil
	})

	latency := time.Since(start).Seconds()

	if ctx.Err() != nil {
		// Discard any partial transcript on cancellation
		observability.RecordTranscription("cancelled", latency)
		return nil, ctx.Err()
	}
	if err != nil {
		observability.RecordTranscription("error", latency)
		observability.RecordError("transcription", "stt")
		return nil, err
	}

	result := mapResponse(response)
	observability.RecordTranscription("success", latency)
	logger.Debug().
		Int("segments", len(result.Segments)).
		Float64("latency_seconds", latency).
		Msg("Transcription completed")

	return result, nil
}

// mapResponse flattens the Deepgram response into our transcript model
func mapResponse(res *listenv1interfaces.PreRecordedResponse) *TranscriptionResult {
	result := &TranscriptionResult{}
	if res == nil || res.Results == nil {
		return result
	}

	if len(res.Results.Channels) > 0 && len(res.Results.Channels[0].Alternatives) > 0 {
		result.Text = res.Results.Channels[0].Alternatives[0].Transcript
	}

	for _, u := range res.Results.Utterances {
		result.Segments = append(result.Segments, TranscriptSegment{
			Text:       u.Transcript,
			Timestamp:  u.Start,
			Duration:   u.End - u.Start,
			Confidence: u.Confidence,
		})
	}

	return result
}
