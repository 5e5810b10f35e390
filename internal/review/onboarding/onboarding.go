// Package onboarding gates registration updates on onboarding progress. An
// account still walking through onboarding must not amend data the flow is
// about to collect.
package onboarding

import (
	"context"
	"log/slog"

	dErrors "emend/pkg/domain-errors"
)

// Jurisdiction selects which onboarding flow to inspect.
type Jurisdiction string

const (
	JurisdictionDomestic    Jurisdiction = "br"
	JurisdictionCrossBorder Jurisdiction = "us"
)

// Step is the onboarding step name reported by the onboarding service.
type Step string

// StepFinished is the only step that permits registration updates.
const StepFinished Step = "finished"

// StepClient reports the current onboarding step for the authenticated
// account. The bearer token travels through because the onboarding service
// resolves the account from it.
type StepClient interface {
	CurrentStep(ctx context.Context, token string, jurisdiction Jurisdiction) (Step, error)
}

// Gate checks that onboarding is finished before an update may proceed.
type Gate struct {
	client StepClient
	logger *slog.Logger
}

func NewGate(client StepClient, logger *slog.Logger) *Gate {
	return &Gate{client: client, logger: logger}
}

// Check verifies the domestic flow always and the cross-border flow only when
// the update touches cross-border employment data.
func (g *Gate) Check(ctx context.Context, token string, crossBorder bool) error {
	if err := g.checkJurisdiction(ctx, token, JurisdictionDomestic); err != nil {
		return err
	}
	if crossBorder {
		return g.checkJurisdiction(ctx, token, JurisdictionCrossBorder)
	}
	return nil
}

func (g *Gate) checkJurisdiction(ctx context.Context, token string, jurisdiction Jurisdiction) error {
	step, err := g.client.CurrentStep(ctx, token, jurisdiction)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeDownstream, "failed to obtain onboarding step")
	}
	if step != StepFinished {
		g.logger.WarnContext(ctx, "onboarding step not finished",
			slog.String("jurisdiction", string(jurisdiction)),
			slog.String("current_step", string(step)),
		)
		return dErrors.New(dErrors.CodeOnboardingStep,
			string(jurisdiction)+" onboarding step does not allow registration update")
	}
	return nil
}
