package models

import dErrors "emend/pkg/domain-errors"

// Sourced pairs a submitted value with its provenance: who supplied it
// (app, operator, document scan). A field that is present always carries a
// source; an absent field means "no change requested", never "clear it".
type Sourced[T any] struct {
	Value  T      `json:"value"`
	Source string `json:"source"`
}

// requireSource enforces the provenance invariant on a present field.
func requireSource[T any](field string, s *Sourced[T]) error {
	if s == nil {
		return nil
	}
	if s.Source == "" {
		return dErrors.New(dErrors.CodeValidation, "missing source for field "+field)
	}
	return nil
}
