// Package enumerate resolves submitted codes against the reference tables:
// occupation activities, states, nationalities, countries, marital statuses
// and city triples. The composite schema checks shape; this gate checks that
// the codes actually exist.
package enumerate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"emend/internal/review/models"
	dErrors "emend/pkg/domain-errors"
)

// ReferenceStore answers existence queries against the reference tables.
type ReferenceStore interface {
	ActivityExists(ctx context.Context, code int64) (bool, error)
	StateExists(ctx context.Context, code string) (bool, error)
	NationalityExists(ctx context.Context, code int64) (bool, error)
	CountryExists(ctx context.Context, code string) (bool, error)
	MaritalStatusExists(ctx context.Context, code int64) (bool, error)
	CityExists(ctx context.Context, country, state string, city int64) (bool, error)
}

// Gate runs the reference lookups for one update request.
type Gate struct {
	store ReferenceStore
}

func NewGate(store ReferenceStore) *Gate {
	return &Gate{store: store}
}

type check struct {
	run func(context.Context) error
}

// Check issues every lookup the request needs concurrently, then reports the
// first failure in a fixed order so the caller sees a deterministic error
// regardless of which lookup finished first.
func (g *Gate) Check(ctx context.Context, req *models.UpdateRequest) error {
	checks := g.collect(req)
	if len(checks) == 0 {
		return nil
	}

	results := make([]error, len(checks))
	grp, gctx := errgroup.WithContext(ctx)
	for i, c := range checks {
		grp.Go(func() error {
			results[i] = c.run(gctx)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	for _, err := range results {
		if err != nil {
			return err
		}
	}
	return nil
}

// collect assembles the lookups in reporting order: activity, document state,
// nationalities, tax-residency countries, marital status, address triple,
// birthplace triple.
func (g *Gate) collect(req *models.UpdateRequest) []check {
	var checks []check

	if p := req.Personal; p != nil && p.OccupationActivity != nil {
		code := p.OccupationActivity.Value
		checks = append(checks, g.exists(
			func(ctx context.Context) (bool, error) { return g.store.ActivityExists(ctx, code) },
			"invalid occupation activity code"))
	}
	if d := req.Documents; d != nil && d.State != nil {
		code := d.State.Value
		checks = append(checks, g.exists(
			func(ctx context.Context) (bool, error) { return g.store.StateExists(ctx, code) },
			"invalid document state"))
	}
	if p := req.Personal; p != nil && p.Nationality != nil {
		code := p.Nationality.Value
		checks = append(checks, g.exists(
			func(ctx context.Context) (bool, error) { return g.store.NationalityExists(ctx, code) },
			"invalid nationality code"))
	}
	if m := req.Marital; m != nil && m.Spouse != nil {
		code := m.Spouse.Nationality.Value
		checks = append(checks, g.exists(
			func(ctx context.Context) (bool, error) { return g.store.NationalityExists(ctx, code) },
			"invalid spouse nationality code"))
	}
	if p := req.Personal; p != nil && p.TaxResidences != nil {
		for _, tr := range p.TaxResidences.Value {
			country := tr.Country
			checks = append(checks, g.exists(
				func(ctx context.Context) (bool, error) { return g.store.CountryExists(ctx, country) },
				fmt.Sprintf("invalid tax residence country %s", country)))
		}
	}
	if m := req.Marital; m != nil && m.Status != nil {
		code := m.Status.Value
		checks = append(checks, g.exists(
			func(ctx context.Context) (bool, error) { return g.store.MaritalStatusExists(ctx, code) },
			"invalid marital status code"))
	}
	if a := req.Address; a != nil && a.Country != nil {
		country, state, city := a.Country.Value, a.State.Value, a.City.Value
		checks = append(checks, g.placeTriple(country, state, city, "address"))
	}
	if p := req.Personal; p != nil && p.BirthPlaceCountry != nil {
		country, state, city := p.BirthPlaceCountry.Value, p.BirthPlaceState.Value, p.BirthPlaceCity.Value
		checks = append(checks, g.placeTriple(country, state, city, "birth place"))
	}
	return checks
}

func (g *Gate) exists(lookup func(context.Context) (bool, error), message string) check {
	return check{run: func(ctx context.Context) error {
		ok, err := lookup(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeDownstream, "reference lookup failed")
		}
		if !ok {
			return dErrors.New(dErrors.CodeInvalidReference, message)
		}
		return nil
	}}
}

// placeTriple resolves country, then state, then the city within both. The
// composite schema already guarantees the three fields arrive together.
func (g *Gate) placeTriple(country, state string, city int64, what string) check {
	return check{run: func(ctx context.Context) error {
		ok, err := g.store.CountryExists(ctx, country)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeDownstream, "reference lookup failed")
		}
		if !ok {
			return dErrors.New(dErrors.CodeInvalidReference, fmt.Sprintf("invalid %s country", what))
		}
		ok, err = g.store.StateExists(ctx, state)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeDownstream, "reference lookup failed")
		}
		if !ok {
			return dErrors.New(dErrors.CodeInvalidReference, fmt.Sprintf("invalid %s state", what))
		}
		ok, err = g.store.CityExists(ctx, country, state, city)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeDownstream, "reference lookup failed")
		}
		if !ok {
			return dErrors.New(dErrors.CodeInvalidReference, fmt.Sprintf("invalid %s city", what))
		}
		return nil
	}}
}
