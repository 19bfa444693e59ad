package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"speech-feedback-service/internal/observability/logging"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "HTTP API base URL")
	reference := flag.String("reference", "Where is the boarding gate?", "Reference sentence")
	spoken := flag.String("spoken", "where is the gate", "What the learner said")
	score := flag.Int("score", -1, "Pronunciation score 0-100 (-1 to use accuracy)")
	learner := flag.String("learner", "learner-demo", "Learner ID")
	flag.Parse()

	logging.Init(logging.Config{Level: "info", Format: "console"})

	payload := map[string]any{
		"referenceText": *reference,
		"spokenText":    *spoken,
		"learnerId":     *learner,
	}
	if *score >= 0 {
		payload["score"] = *score
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode request")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *serverURL+"/v1/assessments", bytes.NewReader(body))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	log.Info().Str("reference", *reference).Str("spoken", *spoken).Msg("Sending assessment")

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

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		pretty.Write(respBody)
	}
	pretty.WriteByte('\n')
	_, _ = pretty.WriteTo(os.Stdout)
}
