package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emend/internal/review/models"
	dErrors "emend/pkg/domain-errors"
)

type produced struct {
	topic string
	key   string
}

type stubProducer struct {
	sent    []produced
	failOn  string
	failErr error
}

func (p *stubProducer) Produce(_ context.Context, topic string, key, _ []byte) error {
	if topic == p.failOn {
		return p.failErr
	}
	p.sent = append(p.sent, produced{topic: topic, key: string(key)})
	return nil
}

func TestDispatch(t *testing.T) {
	record := &models.Record{UniqueID: "u-1"}

	t.Run("publishes to both bridge topics keyed by unique id", func(t *testing.T) {
		producer := &stubProducer{}
		d := NewDispatcher(producer, "settlement-topic", "custody-topic", nil)

		require.NoError(t, d.Dispatch(context.Background(), record))
		require.Len(t, producer.sent, 2)
		assert.Equal(t, produced{topic: "settlement-topic", key: "u-1"}, producer.sent[0])
		assert.Equal(t, produced{topic: "custody-topic", key: "u-1"}, producer.sent[1])
	})

	t.Run("custody failure still leaves the settlement notification sent", func(t *testing.T) {
		producer := &stubProducer{failOn: "custody-topic", failErr: errors.New("broker down")}
		d := NewDispatcher(producer, "settlement-topic", "custody-topic", nil)

		err := d.Dispatch(context.Background(), record)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
		require.Len(t, producer.sent, 1)
		assert.Equal(t, "settlement-topic", producer.sent[0].topic)
	})
}
