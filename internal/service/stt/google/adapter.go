// Package google provides a Google Cloud Speech-to-Text transcriber.
package google

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"

	"speech-feedback-service/internal/service/stt"
)

// Config holds recognition settings.
type Config struct {
	LanguageCode  string
	SampleRateHz  int
	AudioEncoding string
}

// DefaultConfig returns the recognition defaults.
func DefaultConfig() Config {
	return Config{
		LanguageCode:  "en-US",
		SampleRateHz:  16000,
		AudioEncoding: "LINEAR16",
	}
}

// Adapter implements stt.Transcriber using synchronous recognition.
type Adapter struct {
	client *speech.Client
	cfg    Config
}

// New creates a new Google STT adapter.
// Requires GOOGLE_APPLICATION_CREDENTIALS unless opts supply credentials.
func New(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Adapter, error) {
	c, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating speech client: %w", err)
	}
	return &Adapter{client: c, cfg: cfg}, nil
}

// Name implements stt.Transcriber.
func (a *Adapter) Name() string {
	return "google"
}

// Transcribe sends the clip to Google and joins the top alternative of each result.
func (a *Adapter) Transcribe(ctx context.Context, audio []byte) (stt.Transcript, error) {
	resp, err := a.client.Recognize(ctx, buildRequest(a.cfg, audio))
	if err != nil {
		return stt.Transcript{}, fmt.Errorf("recognize: %w", err)
	}
	return transcriptFrom(resp)
}

// Close releases the underlying client.
func (a *Adapter) Close() error {
	return a.client.Close()
}

func buildRequest(cfg Config, audio []byte) *speechpb.RecognizeRequest {
	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        parseAudioEncoding(cfg.AudioEncoding),
			SampleRateHertz: int32(cfg.SampleRateHz),
			LanguageCode:    cfg.LanguageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}
}

// transcriptFrom joins the results and averages their confidences.
func transcriptFrom(resp *speechpb.RecognizeResponse) (stt.Transcript, error) {
	var (
		parts      []string
		confidence float64
	)
	for _, r := range resp.GetResults() {
		if len(r.Alternatives) == 0 {
			continue
		}
		alt := r.Alternatives[0]
		parts = append(parts, strings.TrimSpace(alt.Transcript))
		confidence += float64(alt.Confidence)
	}
	if len(parts) == 0 {
		return stt.Transcript{}, stt.ErrNoSpeech
	}
	return stt.Transcript{
		Text:       strings.Join(parts, " "),
		Confidence: confidence / float64(len(parts)),
	}, nil
}

func parseAudioEncoding(s string) speechpb.RecognitionConfig_AudioEncoding {
	switch s {
	case "LINEAR16":
		return speechpb.RecognitionConfig_LINEAR16
	case "MULAW":
		return speechpb.RecognitionConfig_MULAW
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC
	case "AMR":
		return speechpb.RecognitionConfig_AMR
	case "AMR_WB":
		return speechpb.RecognitionConfig_AMR_WB
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS
	case "SPEEX_WITH_HEADER_BYTE":
		return speechpb.RecognitionConfig_SPEEX_WITH_HEADER_BYTE
	case "WEBM_OPUS":
		return speechpb.RecognitionConfig_WEBM_OPUS
	default:
		return speechpb.RecognitionConfig_LINEAR16
	}
}
