// Package kafka ships audit entries to a Kafka topic for downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "workbench/pkg/platform/audit"
)

// Sink produces one record per entry, keyed by actor so per-user history
// stays ordered within a partition.
type Sink struct {
	client *kgo.Client
	topic  string
}

// New dials the brokers and returns a producing sink.
func New(brokers []string, topic string) (*Sink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Sink{client: client, topic: topic}, nil
}

func (s *Sink) Send(ctx context.Context, entry audit.Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(entry.Actor),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit entry: %w", err)
	}
	return nil
}

// Close flushes outstanding records and releases the client.
func (s *Sink) Close() {
	s.client.Close()
}
