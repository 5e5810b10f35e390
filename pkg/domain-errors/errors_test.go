package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: every pipeline stage communicates failure through these codes,
// and the HTTP layer translates them blindly. Unit tests ensure invariants like
// "wrapped domain errors preserve original code" and "errors.Is matches by code"
// are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "user not found"}
		s.Equal("user not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeNotFound}
		s.Equal("not_found", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("connection refused")
		err := &Error{Code: CodeDownstream, Message: "risk engine unavailable", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeNotFound, Message: "not found"}
		s.Nil(err.Unwrap())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeInvalidReference, Message: "invalid nationality"}
		err2 := &Error{Code: CodeInvalidReference, Message: "invalid city"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := &Error{Code: CodeInternal}
		s.False(err1.Is(err2))
	})

	s.Run("does not match non-domain errors", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := errors.New("not found")
		s.False(err1.Is(err2))
	})

	s.Run("works with errors.Is through chain", func() {
		inner := &Error{Code: CodeUpdateFailed, Message: "original"}
		wrapped := &Error{Code: CodeInternal, Message: "wrapped", Err: inner}
		target := &Error{Code: CodeUpdateFailed}

		s.True(errors.Is(wrapped, target))
	})
}

func (s *DomainErrorsSuite) TestNew() {
	err := New(CodeBadRequest, "invalid input")
	s.Require().NotNil(err)

	var domainErr *Error
	s.Require().True(errors.As(err, &domainErr))
	s.Equal(CodeBadRequest, domainErr.Code)
	s.Equal("invalid input", domainErr.Message)
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("wraps plain error with new code", func() {
		inner := errors.New("dial tcp: timeout")
		err := Wrap(inner, CodeDownstream, "audit sink unreachable")

		var domainErr *Error
		s.Require().True(errors.As(err, &domainErr))
		s.Equal(CodeDownstream, domainErr.Code)
		s.Equal(inner, errors.Unwrap(err))
	})

	s.Run("preserves code of wrapped domain error", func() {
		inner := New(CodeOnboardingStep, "step not finished")
		err := Wrap(inner, CodeInternal, "gate failed")

		var domainErr *Error
		s.Require().True(errors.As(err, &domainErr))
		s.Equal(CodeOnboardingStep, domainErr.Code)
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	err := New(CodeHighRiskActivity, "occupation not allowed")
	s.True(HasCode(err, CodeHighRiskActivity))
	s.False(HasCode(err, CodeValidation))
	s.False(HasCode(errors.New("plain"), CodeHighRiskActivity))
}
