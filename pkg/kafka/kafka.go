package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const LifecycleTopic = "library.lifecycle"

type Config struct {
	Addrs       []string      `envconfig:"KAFKA_ADDRS"`
	Topic       string        `envconfig:"KAFKA_TOPIC" default:"library.lifecycle"`
	ClientID    string        `envconfig:"KAFKA_CLIENT_ID" default:"library-catalog"`
	SendTimeout time.Duration `envconfig:"KAFKA_SEND_TIMEOUT" default:"5s"`
	MaxRetries  int           `envconfig:"KAFKA_MAX_RETRIES" default:"3"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

// NewProducer returns a producer for lifecycle events. Publishing happens after the
// database commit and is not retried by the caller, so the producer is idempotent:
// its own retries never duplicate or reorder events of one book.
func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(cfg.Addrs, producerConfig(cfg))
}

func producerConfig(cfg Config) *sarama.Config {
	sc := sarama.NewConfig()
	// idempotence needs brokers >= 0.11
	sc.Version = sarama.V2_1_0_0
	if cfg.ClientID != "" {
		sc.ClientID = cfg.ClientID
	}

	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Return.Successes = true
	sc.Producer.Partitioner = sarama.NewHashPartitioner
	sc.Producer.Idempotent = true
	sc.Net.MaxOpenRequests = 1

	sc.Producer.Retry.Max = cfg.MaxRetries
	if sc.Producer.Retry.Max < 1 {
		sc.Producer.Retry.Max = 1
	}
	sc.Producer.Retry.Backoff = 250 * time.Millisecond
	if cfg.SendTimeout > 0 {
		sc.Producer.Timeout = cfg.SendTimeout
		sc.Net.WriteTimeout = cfg.SendTimeout
	}
	return sc
}
