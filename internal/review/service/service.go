// Package service orchestrates the registration update pipeline: block-list
// check, composite validation, reference and onboarding gates, diff/merge,
// risk re-scoring, audit, persistence and downstream dispatch. A failure at
// any stage aborts everything after it.
package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"emend/internal/audit"
	"emend/internal/blocklist"
	"emend/internal/device"
	"emend/internal/platform/metrics"
	"emend/internal/review/builder"
	"emend/internal/review/models"
	"emend/internal/review/risk"
	"emend/internal/user/store"
	dErrors "emend/pkg/domain-errors"
	"emend/pkg/requestcontext"
)

// Pipeline stage labels used for rejection metrics and spans.
const (
	StageBlocklist = "blocklist"
	StageValidate  = "validate"
	StageGates     = "gates"
	StageLoad      = "load"
	StageRisk      = "risk"
	StageAudit     = "audit"
	StagePersist   = "persist"
	StageDispatch  = "dispatch"
)

// ReferenceGate resolves submitted codes against the reference tables.
type ReferenceGate interface {
	Check(ctx context.Context, req *models.UpdateRequest) error
}

// OnboardingGate verifies onboarding progress for the jurisdictions the
// update touches.
type OnboardingGate interface {
	Check(ctx context.Context, token string, crossBorder bool) error
}

// Auditor records the pipeline's two audit entries.
type Auditor interface {
	RecordRegistrationChange(ctx context.Context, change audit.RegistrationChange) error
	RecordRiskAssessment(ctx context.Context, assessment audit.RiskAssessment) error
}

// Notifier fans the persisted record out to the downstream bridges.
type Notifier interface {
	Dispatch(ctx context.Context, record *models.Record) error
}

// Service runs the update pipeline.
type Service struct {
	users      store.Store
	blocked    blocklist.Store
	references ReferenceGate
	onboarding OnboardingGate
	scorer     risk.Scorer
	auditor    Auditor
	notifier   Notifier
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithMetrics attaches pipeline counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer overrides the default tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func New(
	users store.Store,
	blocked blocklist.Store,
	references ReferenceGate,
	onboardingGate OnboardingGate,
	scorer risk.Scorer,
	auditor Auditor,
	notifier Notifier,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		users:      users,
		blocked:    blocked,
		references: references,
		onboarding: onboardingGate,
		scorer:     scorer,
		auditor:    auditor,
		notifier:   notifier,
		logger:     logger,
		tracer:     otel.Tracer("emend/review"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateInput is one authenticated amendment request.
type UpdateInput struct {
	UniqueID string
	// Bearer token of the caller, forwarded to the onboarding service.
	Token   string
	Device  device.Descriptor
	Request *models.UpdateRequest
}

// Update runs the full pipeline for one request.
func (s *Service) Update(ctx context.Context, input UpdateInput) error {
	ctx, span := s.tracer.Start(ctx, "review.update")
	defer span.End()

	if err := s.checkBlocked(ctx, input.UniqueID); err != nil {
		return s.reject(ctx, StageBlocklist, err)
	}

	if err := s.validate(ctx, input.Request); err != nil {
		return s.reject(ctx, StageValidate, err)
	}

	if err := s.runGates(ctx, input); err != nil {
		return s.reject(ctx, StageGates, err)
	}

	stored, err := s.load(ctx, input.UniqueID)
	if err != nil {
		return s.reject(ctx, StageLoad, err)
	}

	merged, changes := builder.Build(stored, input.Request)

	if err := s.auditor.RecordRegistrationChange(ctx, audit.RegistrationChange{
		UniqueID:       input.UniqueID,
		ModifiedFields: changes,
		Update:         input.Request,
	}); err != nil {
		return s.reject(ctx, StageAudit, err)
	}

	verdict, err := s.score(ctx, merged)
	if err != nil {
		return s.reject(ctx, StageRisk, err)
	}
	if err := s.fold(ctx, merged, verdict); err != nil {
		return s.reject(ctx, StageRisk, err)
	}

	if err := s.auditor.RecordRiskAssessment(ctx, s.assessment(input, merged, verdict)); err != nil {
		return s.reject(ctx, StageAudit, err)
	}

	if err := s.persist(ctx, input.UniqueID, merged); err != nil {
		return s.reject(ctx, StagePersist, err)
	}

	if err := s.dispatch(ctx, merged); err != nil {
		return s.reject(ctx, StageDispatch, err)
	}

	s.metrics.IncrementUpdatesAccepted()
	s.logger.InfoContext(ctx, "registration update applied",
		slog.String("unique_id", input.UniqueID),
		slog.Int("modified_fields", len(changes)),
	)
	return nil
}

func (s *Service) checkBlocked(ctx context.Context, uniqueID string) error {
	ctx, span := s.tracer.Start(ctx, "review.blocklist")
	defer span.End()

	blocked, err := s.blocked.IsBlocked(ctx, uniqueID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeDownstream, "failed to check block list")
	}
	if blocked {
		s.logger.WarnContext(ctx, "blocked account attempted registration update",
			slog.String("unique_id", uniqueID))
		return dErrors.New(dErrors.CodeAccountBlocked, "account blocked for registration updates")
	}
	return nil
}

func (s *Service) validate(ctx context.Context, req *models.UpdateRequest) error {
	_, span := s.tracer.Start(ctx, "review.validate")
	defer span.End()
	return req.Validate()
}

// runGates issues the reference lookups and the onboarding checks
// concurrently. When both fail, the reference error wins so callers see a
// stable failure for the same request.
func (s *Service) runGates(ctx context.Context, input UpdateInput) error {
	ctx, span := s.tracer.Start(ctx, "review.gates")
	defer span.End()

	var refErr, onbErr error
	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		refErr = s.references.Check(gctx, input.Request)
		return nil
	})
	grp.Go(func() error {
		onbErr = s.onboarding.Check(gctx, input.Token, input.Request.CrossBorderEmployment != nil)
		return nil
	})
	if err := grp.Wait(); err != nil {
		return err
	}

	if refErr != nil {
		return refErr
	}
	return onbErr
}

func (s *Service) load(ctx context.Context, uniqueID string) (*models.Record, error) {
	ctx, span := s.tracer.Start(ctx, "review.load")
	defer span.End()
	return s.users.Get(ctx, uniqueID)
}

func (s *Service) score(ctx context.Context, merged *models.Record) (*risk.Verdict, error) {
	ctx, span := s.tracer.Start(ctx, "review.risk")
	defer span.End()

	s.metrics.IncrementRiskRescorings()
	verdict, err := s.scorer.Score(ctx, risk.Input{
		Patrimony:    merged.Personal.Patrimony,
		CityCode:     merged.Address.City,
		Occupation:   merged.Personal.OccupationActivity,
		IsPEP:        merged.PEP.IsPEP,
		IsPEPRelated: merged.PEP.IsPEPRelated,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDownstream, "failed to obtain risk data")
	}
	return verdict, nil
}

// fold writes the verdict into the merged record. A missing risk block means
// the stored record predates risk scoring and must be repaired out of band.
func (s *Service) fold(ctx context.Context, merged *models.Record, verdict *risk.Verdict) error {
	if merged.Risk == nil {
		return dErrors.New(dErrors.CodeInconsistentData, "stored record has no risk data")
	}

	if !verdict.Approval {
		s.metrics.IncrementRiskNotApproved()
		s.logger.WarnContext(ctx, "risk engine did not approve updated registration",
			slog.String("unique_id", merged.UniqueID),
			slog.String("rating", string(verdict.Rating)),
			slog.Float64("score", verdict.Score),
		)
	}

	if merged.Risk.Rating != verdict.Rating {
		changedAt := requestcontext.Now(ctx)
		merged.ChangeControl.RiskRatingChangedAt = &changedAt
	}
	merged.Risk.Rating = verdict.Rating
	merged.Risk.Score = verdict.Score
	return nil
}

// assessment builds the risk audit entry. The full merged record rides along
// only when the engine did not approve.
func (s *Service) assessment(input UpdateInput, merged *models.Record, verdict *risk.Verdict) audit.RiskAssessment {
	entry := audit.RiskAssessment{
		UniqueID:    input.UniqueID,
		Score:       verdict.Score,
		Rating:      verdict.Rating,
		Approval:    verdict.Approval,
		Validations: verdict.Validations,
		Device:      &input.Device,
	}
	if !verdict.Approval {
		entry.UserData = merged
	}
	return entry
}

func (s *Service) persist(ctx context.Context, uniqueID string, merged *models.Record) error {
	ctx, span := s.tracer.Start(ctx, "review.persist")
	defer span.End()

	merged.ChangeControl.UpdatedAt = requestcontext.Now(ctx)
	matched, err := s.users.Update(ctx, uniqueID, merged)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user record")
	}
	if matched == 0 {
		return dErrors.New(dErrors.CodeUpdateFailed, "user record update matched no documents")
	}
	return nil
}

func (s *Service) dispatch(ctx context.Context, merged *models.Record) error {
	ctx, span := s.tracer.Start(ctx, "review.dispatch")
	defer span.End()
	return s.notifier.Dispatch(ctx, merged)
}

func (s *Service) reject(ctx context.Context, stage string, err error) error {
	s.metrics.IncrementUpdatesRejected(stage)
	if businessRejection(err) {
		s.logger.WarnContext(ctx, "registration update rejected",
			slog.String("stage", stage), slog.String("error", err.Error()))
	} else {
		s.logger.ErrorContext(ctx, "registration update failed",
			slog.String("stage", stage), slog.String("error", err.Error()))
	}
	return err
}

// businessRejection separates expected business-rule outcomes from
// infrastructure failures for logging purposes.
func businessRejection(err error) bool {
	for _, code := range []dErrors.Code{
		dErrors.CodeValidation,
		dErrors.CodeBadRequest,
		dErrors.CodeInvalidReference,
		dErrors.CodeHighRiskActivity,
		dErrors.CodeOnboardingStep,
		dErrors.CodeAccountBlocked,
		dErrors.CodeNotFound,
	} {
		if dErrors.HasCode(err, code) {
			return true
		}
	}
	return false
}
