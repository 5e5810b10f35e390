// Package notify fans a persisted registration out to the downstream
// bridges. The settlement bridge syncs the domestic books; the custody
// bridge syncs the cross-border custodian.
package notify

import (
	"context"
	"encoding/json"

	"emend/internal/platform/metrics"
	"emend/internal/review/models"
	dErrors "emend/pkg/domain-errors"
)

const (
	QueueSettlement = "settlement"
	QueueCustody    = "custody"
)

// Producer is the broker surface the dispatcher needs.
type Producer interface {
	Produce(ctx context.Context, topic string, key, value []byte) error
}

// Dispatcher publishes the final record to both bridge topics. Dispatch runs
// after the record is persisted; a failure here is reported to the caller
// but the stored update stays in place.
type Dispatcher struct {
	producer        Producer
	settlementTopic string
	custodyTopic    string
	metrics         *metrics.Metrics
}

func NewDispatcher(producer Producer, settlementTopic, custodyTopic string, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		producer:        producer,
		settlementTopic: settlementTopic,
		custodyTopic:    custodyTopic,
		metrics:         m,
	}
}

// Dispatch publishes the record to the settlement topic, then the custody
// topic, keyed by unique id so each bridge sees one account in order.
func (d *Dispatcher) Dispatch(ctx context.Context, record *models.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode notification")
	}
	key := []byte(record.UniqueID)

	if err := d.producer.Produce(ctx, d.settlementTopic, key, payload); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to notify settlement bridge")
	}
	d.metrics.IncrementNotifications(QueueSettlement)

	if err := d.producer.Produce(ctx, d.custodyTopic, key, payload); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to notify custody bridge")
	}
	d.metrics.IncrementNotifications(QueueCustody)

	return nil
}
