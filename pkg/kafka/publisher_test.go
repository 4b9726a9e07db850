package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/library-catalog/pkg/circuit_breaker"
	"github.com/Astemirdum/library-catalog/pkg/kafka"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, producer.Close()) }()

	due := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	event := kafka.NewEventLifecycle(kafka.EventBorrowed, 7, 3, 42, due, nil)
	require.Equal(t, kafka.SimplexDown, event.Simplex)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != kafka.LifecycleTopic {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "42" {
			return errors.New("unexpected key " + string(key))
		}
		return nil
	})

	p := kafka.NewPublisher(producer, "", nil)
	require.NoError(t, p.Publish(context.Background(), event))
}

func TestPublisher_BreakerOpens(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { _ = producer.Close() }()

	errBroker := errors.New("broker down")
	producer.ExpectSendMessageAndFail(errBroker)
	producer.ExpectSendMessageAndFail(errBroker)

	cb := circuit_breaker.New(circuit_breaker.Config{RecordLength: 2, Timeout: time.Minute, Percentile: 1, RecoveryRequests: 1})
	p := kafka.NewPublisher(producer, "lifecycle", cb)

	event := kafka.NewEventLifecycle(kafka.EventReturned, 1, 1, 1, time.Now(), nil)
	require.Equal(t, kafka.SimplexUp, event.Simplex)
	require.ErrorIs(t, p.Publish(context.Background(), event), errBroker)
	require.ErrorIs(t, p.Publish(context.Background(), event), errBroker)
	require.ErrorIs(t, p.Publish(context.Background(), event), circuit_breaker.ErrOpenCB)
}

func TestNopPublisher(t *testing.T) {
	require.NoError(t, kafka.NopPublisher().Publish(context.Background(), kafka.EventLifecycle{}))
}
