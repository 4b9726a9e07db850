package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
)

func TestProducerConfig(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantClient  string
		wantRetries int
		wantTimeout time.Duration
	}{
		{
			name:        "configured",
			cfg:         Config{ClientID: "library-catalog", SendTimeout: 5 * time.Second, MaxRetries: 3},
			wantClient:  "library-catalog",
			wantRetries: 3,
			wantTimeout: 5 * time.Second,
		},
		{
			name:        "zero values keep idempotence valid",
			cfg:         Config{},
			wantClient:  sarama.NewConfig().ClientID,
			wantRetries: 1,
			wantTimeout: sarama.NewConfig().Producer.Timeout,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			sc := producerConfig(tt.cfg)
			require.NoError(t, sc.Validate())

			require.True(t, sc.Producer.Idempotent)
			require.Equal(t, sarama.WaitForAll, sc.Producer.RequiredAcks)
			require.Equal(t, 1, sc.Net.MaxOpenRequests)
			require.True(t, sc.Producer.Return.Successes)
			require.True(t, sc.Version.IsAtLeast(sarama.V0_11_0_0))

			require.Equal(t, tt.wantClient, sc.ClientID)
			require.Equal(t, tt.wantRetries, sc.Producer.Retry.Max)
			require.Equal(t, tt.wantTimeout, sc.Producer.Timeout)
		})
	}
}

// Events of one book must land on one partition.
func TestProducerConfig_PartitionByBook(t *testing.T) {
	p := producerConfig(Config{}).Producer.Partitioner(LifecycleTopic)
	msg := func() *sarama.ProducerMessage {
		return &sarama.ProducerMessage{Topic: LifecycleTopic, Key: sarama.StringEncoder("42")}
	}
	first, err := p.Partition(msg(), 12)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		got, err := p.Partition(msg(), 12)
		require.NoError(t, err)
		require.Equal(t, first, got)
	}
}
