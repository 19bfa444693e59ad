package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"speech-feedback-service/internal/observability/logging"
)

// WAV header is 44 bytes for standard PCM files
const wavHeaderSize = 44

func main() {
	audioFile := flag.String("audio", "testdata/sample-16khz.wav", "Path to WAV file (16-bit mono PCM)")
	serverURL := flag.String("server", "http://localhost:8080", "HTTP API base URL")
	reference := flag.String("reference", "Where is the boarding gate?", "Reference sentence")
	learner := flag.String("learner", "learner-demo", "Learner ID")
	expectedRate := flag.Uint("rate", 16000, "Sample rate the server is configured for")
	flag.Parse()

	logging.Init(logging.Config{Level: "info", Format: "console"})

	data, err := os.ReadFile(*audioFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", *audioFile).Msg("Failed to read audio file")
	}
	if len(data) < wavHeaderSize {
		log.Fatal().Int("bytes", len(data)).Msg("File too short for a WAV header")
	}

	header := data[:wavHeaderSize]
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		log.Fatal().Msg("Not a valid WAV file")
	}

	// Extract audio format info
	audioFormat := binary.LittleEndian.Uint16(header[20:22])
	numChannels := binary.LittleEndian.Uint16(header[22:24])
	sampleRate := binary.LittleEndian.Uint32(header[24:28])
	bitsPerSample := binary.LittleEndian.Uint16(header[34:36])

	log.Info().
		Uint16("format", audioFormat).
		Uint16("channels", numChannels).
		Uint32("sampleRate", sampleRate).
		Uint16("bitsPerSample", bitsPerSample).
		Msg("WAV file")

	if audioFormat != 1 { // PCM
		log.Fatal().Msg("Only PCM format supported")
	}
	if uint(sampleRate) != *expectedRate {
		log.Warn().Uint32("sampleRate", sampleRate).Uint("expected", *expectedRate).Msg("Sample rate mismatch")
	}

	// LINEAR16 recognition takes raw samples, so strip the header.
	pcm := data[wavHeaderSize:]

	body, err := json.Marshal(map[string]string{
		"referenceText": *reference,
		"audio":         base64.StdEncoding.EncodeToString(pcm),
		"learnerId":     *learner,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode request")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *serverURL+"/v1/assessments/audio", bytes.NewReader(body))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal().Err(err).Msg("Request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read response")
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatal().Int("status", resp.StatusCode).Str("body", string(respBody)).Msg("Assessment rejected")
	}

	log.Info().Int("pcmBytes", len(pcm)).Dur("elapsed", time.Since(start)).Msg("Assessment completed")

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		pretty.Write(respBody)
	}
	pretty.WriteByte('\n')
	_, _ = pretty.WriteTo(os.Stdout)
}
