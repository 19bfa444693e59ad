package google

import (
	"errors"
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"

	"speech-feedback-service/internal/service/stt"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LanguageCode != "en-US" {
		t.Errorf("expected default language 'en-US', got %s", cfg.LanguageCode)
	}
	if cfg.SampleRateHz != 16000 {
		t.Errorf("expected default sample rate 16000, got %d", cfg.SampleRateHz)
	}
	if cfg.AudioEncoding != "LINEAR16" {
		t.Errorf("expected default encoding 'LINEAR16', got %s", cfg.AudioEncoding)
	}
}

func TestParseAudioEncoding(t *testing.T) {
	tests := []struct {
		input    string
		expected speechpb.RecognitionConfig_AudioEncoding
	}{
		{"LINEAR16", speechpb.RecognitionConfig_LINEAR16},
		{"MULAW", speechpb.RecognitionConfig_MULAW},
		{"FLAC", speechpb.RecognitionConfig_FLAC},
		{"AMR", speechpb.RecognitionConfig_AMR},
		{"AMR_WB", speechpb.RecognitionConfig_AMR_WB},
		{"OGG_OPUS", speechpb.RecognitionConfig_OGG_OPUS},
		{"SPEEX_WITH_HEADER_BYTE", speechpb.RecognitionConfig_SPEEX_WITH_HEADER_BYTE},
		{"WEBM_OPUS", speechpb.RecognitionConfig_WEBM_OPUS},
		{"UNKNOWN", speechpb.RecognitionConfig_LINEAR16}, // fallback
		{"linear16", speechpb.RecognitionConfig_LINEAR16}, // lowercase -> fallback
		{"", speechpb.RecognitionConfig_LINEAR16},        // fallback
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseAudioEncoding(tt.input)
			if got != tt.expected {
				t.Errorf("parseAudioEncoding(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildRequest(t *testing.T) {
	req := buildRequest(Config{LanguageCode: "ko-KR", SampleRateHz: 8000, AudioEncoding: "MULAW"}, []byte("pcm"))

	if req.Config.LanguageCode != "ko-KR" {
		t.Errorf("expected language ko-KR, got %s", req.Config.LanguageCode)
	}
	if req.Config.SampleRateHertz != 8000 {
		t.Errorf("expected sample rate 8000, got %d", req.Config.SampleRateHertz)
	}
	if req.Config.Encoding != speechpb.RecognitionConfig_MULAW {
		t.Errorf("expected MULAW, got %v", req.Config.Encoding)
	}
	if string(req.Audio.GetContent()) != "pcm" {
		t.Errorf("expected audio content to be forwarded")
	}
}

func TestTranscriptFrom(t *testing.T) {
	resp := &speechpb.RecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{Transcript: "where is the", Confidence: 0.9},
				{Transcript: "wear is the", Confidence: 0.4},
			}},
			{Alternatives: nil},
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{Transcript: " boarding gate ", Confidence: 0.7},
			}},
		},
	}

	got, err := transcriptFrom(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "where is the boarding gate" {
		t.Errorf("unexpected text %q", got.Text)
	}
	if got.Score() != 80 {
		t.Errorf("expected averaged score 80, got %d (confidence %v)", got.Score(), got.Confidence)
	}
}

func TestTranscriptFrom_NoResults(t *testing.T) {
	_, err := transcriptFrom(&speechpb.RecognizeResponse{})
	if !errors.Is(err, stt.ErrNoSpeech) {
		t.Errorf("expected ErrNoSpeech, got %v", err)
	}
}
