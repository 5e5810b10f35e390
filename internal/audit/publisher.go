package audit

import (
	"context"

	"github.com/google/uuid"

	dErrors "emend/pkg/domain-errors"
	"emend/pkg/requestcontext"
)

// Store appends audit entries to a durable sink.
type Store interface {
	Append(ctx context.Context, entry Entry) error
}

// Publisher records the pipeline's audit entries. It is fail-closed: if an
// entry cannot be appended the whole update is aborted, because an
// unauditable change must not reach the stored record.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// RecordRegistrationChange appends the pre-persistence change entry.
func (p *Publisher) RecordRegistrationChange(ctx context.Context, change RegistrationChange) error {
	return p.emit(ctx, Entry{
		Kind:     KindRegistrationChange,
		UniqueID: change.UniqueID,
		Payload:  change,
	})
}

// RecordRiskAssessment appends the risk verdict entry.
func (p *Publisher) RecordRiskAssessment(ctx context.Context, assessment RiskAssessment) error {
	return p.emit(ctx, Entry{
		Kind:     KindRiskAssessment,
		UniqueID: assessment.UniqueID,
		Payload:  assessment,
	})
}

func (p *Publisher) emit(ctx context.Context, entry Entry) error {
	entry.ID = uuid.NewString()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = requestcontext.Now(ctx)
	}
	if err := p.store.Append(ctx, entry); err != nil {
		return dErrors.Wrap(err, dErrors.CodeDownstream, "failed to record audit entry")
	}
	return nil
}
