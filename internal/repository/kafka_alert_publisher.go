package repository

import (
	"context"

	"BuildPulse/internal/domain/models"
	pkgkafka "BuildPulse/pkg/kafka"
	applogger "BuildPulse/pkg/logger"
)

// KafkaAlertPublisher publishes alert batches to the alerts topic. Alert IDs
// key the messages so consumers can compact per alert.
type KafkaAlertPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	l        *applogger.Logger
}

func NewKafkaAlertPublisher(producer *pkgkafka.Producer, topic string, l *applogger.Logger) *KafkaAlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic, l: l}
}

func (p *KafkaAlertPublisher) PublishAlerts(ctx context.Context, alerts []models.AlertItem) error {
	if len(alerts) == 0 {
		return nil
	}

	msgs := make([]pkgkafka.Message, 0, len(alerts))
	for _, a := range alerts {
		msgs = append(msgs, pkgkafka.Message{Key: []byte(a.ID), Value: a})
	}

	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		if p.l != nil {
			p.l.Error("publish alerts failed",
				applogger.String("topic", p.topic),
				applogger.Int("count", len(alerts)),
				applogger.Error(err))
		}
		return err
	}
	if p.l != nil {
		p.l.Debug("alerts published",
			applogger.String("topic", p.topic),
			applogger.Int("count", len(alerts)))
	}
	return nil
}

func (p *KafkaAlertPublisher) Close() error {
	return p.producer.Close()
}
