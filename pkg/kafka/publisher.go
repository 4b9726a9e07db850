package kafka

import (
	"context"
	"strconv"

	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/Astemirdum/library-catalog/pkg/circuit_breaker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Publisher interface {
	Publish(ctx context.Context, event EventLifecycle) error
}

type publisher struct {
	producer sarama.SyncProducer
	cb       circuit_breaker.CircuitBreaker
	topic    string
}

// NewPublisher sends lifecycle events keyed by book id, so events of one book stay ordered.
func NewPublisher(producer sarama.SyncProducer, topic string, cb circuit_breaker.CircuitBreaker) Publisher {
	if topic == "" {
		topic = LifecycleTopic
	}
	return &publisher{
		producer: producer,
		cb:       cb,
		topic:    topic,
	}
}

func (p *publisher) Publish(ctx context.Context, event EventLifecycle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.BookID, 10)),
		Value: sarama.ByteEncoder(data),
	}
	send := func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	}
	if p.cb == nil {
		return send()
	}
	return p.cb.Call(send)
}

type nopPublisher struct{}

// NopPublisher drops every event. Used when no brokers are configured.
func NopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, EventLifecycle) error {
	return nil
}
