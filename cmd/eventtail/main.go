// Event tail - prints assessment events from Kafka as log lines.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"

	"speech-feedback-service/internal/models"
	"speech-feedback-service/internal/observability/logging"
)

func main() {
	brokers := flag.String("brokers", "localhost:9092", "Kafka brokers (comma-separated)")
	topicCompleted := flag.String("topic-completed", "learning.assessment.completed", "Completed assessment topic")
	topicDegraded := flag.String("topic-degraded", "learning.feedback.degraded", "Degraded feedback topic")
	since := flag.Duration("since", time.Hour, "How far back to start reading")
	flag.Parse()

	logging.Init(logging.Config{Level: "info", Format: "console"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	brokerList := strings.Split(*brokers, ",")
	log.Info().Strs("brokers", brokerList).Str("completed", *topicCompleted).Str("degraded", *topicDegraded).
		Msg("Event tail starting")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return consume(gctx, brokerList, *topicCompleted, *since) })
	g.Go(func() error { return consume(gctx, brokerList, *topicDegraded, *since) })

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Event tail failed")
	}
}

func consume(ctx context.Context, brokers []string, topic string, since time.Duration) error {
	// Use partition reader without consumer group (works better through port-forward)
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()

	if err := reader.SetOffsetAt(ctx, time.Now().Add(-since)); err != nil {
		return err
	}

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Warn().Err(err).Str("topic", topic).Msg("Kafka read error")
			time.Sleep(time.Second)
			continue
		}
		printEvent(topic, msg.Value)
	}
}

func printEvent(topic string, value []byte) {
	var head struct {
		EventType string `json:"eventType"`
	}
	if err := json.Unmarshal(value, &head); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("Skipping non-JSON message")
		return
	}

	switch head.EventType {
	case models.EventAssessmentCompleted:
		var ev models.AssessmentCompleted
		if err := json.Unmarshal(value, &ev); err != nil {
			log.Warn().Err(err).Msg("Bad completed event")
			return
		}
		log.Info().
			Str("assessmentId", ev.AssessmentID).
			Str("learnerId", ev.LearnerID).
			Str("source", ev.Source).
			Int("accuracy", ev.Comparison.Accuracy).
			Int("score", ev.Score).
			Strs("missed", ev.Comparison.MissedWords).
			Str("tier", ev.Tier).
			Str("rule", ev.Rule).
			Bool("isAI", ev.IsAI).
			Msg("Assessment completed")

	case models.EventFeedbackDegraded:
		var ev models.FeedbackDegraded
		if err := json.Unmarshal(value, &ev); err != nil {
			log.Warn().Err(err).Msg("Bad degraded event")
			return
		}
		log.Warn().
			Str("assessmentId", ev.AssessmentID).
			Str("learnerId", ev.LearnerID).
			Str("reason", ev.Reason).
			Str("error", ev.Error).
			Msg("Feedback degraded")

	default:
		log.Debug().Str("topic", topic).Str("eventType", head.EventType).Msg("Unknown event type")
	}
}
