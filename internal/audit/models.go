package audit

import (
	"time"

	"emend/internal/device"
	"emend/internal/review/models"
	"emend/internal/review/risk"
)

// Kind discriminates the audit entry payload.
type Kind string

const (
	KindRegistrationChange Kind = "registration_change"
	KindRiskAssessment     Kind = "risk_assessment"
)

// Entry is one append-only audit record. Payload holds the kind-specific
// structure and is serialized as-is into the outbox.
type Entry struct {
	ID        string
	Kind      Kind
	UniqueID  string
	Timestamp time.Time
	Payload   any
}

// RegistrationChange is emitted before persistence: what the customer asked
// for and which stored fields it would move.
type RegistrationChange struct {
	UniqueID       string                `json:"unique_id"`
	ModifiedFields []models.FieldChange  `json:"modified_fields"`
	Update         *models.UpdateRequest `json:"update"`
}

// RiskAssessment is emitted after re-scoring. UserData carries the full
// merged record only when the engine did not approve, so the compliance desk
// reviews exactly what was scored.
type RiskAssessment struct {
	UniqueID    string             `json:"unique_id"`
	Score       float64            `json:"score"`
	Rating      models.RiskRating  `json:"rating"`
	Approval    bool               `json:"approval"`
	Validations risk.Validations   `json:"validations"`
	Device      *device.Descriptor `json:"device,omitempty"`
	UserData    *models.Record     `json:"user_data,omitempty"`
}
