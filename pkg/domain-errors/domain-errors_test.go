package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorString() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeDecode, Message: "image bytes are empty"}
		s.Equal("image bytes are empty", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeUpstreamTimeout}
		s.Equal("upstream_timeout", err.Error())
	})
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	s.Run("same code different message", func() {
		a := &Error{Code: CodeUpstream, Message: "status 500"}
		b := &Error{Code: CodeUpstream, Message: "connection refused"}
		s.True(errors.Is(a, b))
	})

	s.Run("different codes", func() {
		s.False(errors.Is(&Error{Code: CodeUpstream}, &Error{Code: CodeUpstreamTimeout}))
	})

	s.Run("through a fmt wrap", func() {
		inner := New(CodeNoOCREngine, "no engine")
		wrapped := fmt.Errorf("ocr attempt: %w", inner)
		s.True(errors.Is(wrapped, &Error{Code: CodeNoOCREngine}))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves original domain code", func() {
		original := New(CodeDecode, "not an image")
		wrapped := Wrap(original, CodeInternal, "normalize frame")

		var domainErr *Error
		s.Require().True(errors.As(wrapped, &domainErr))
		s.Equal(CodeDecode, domainErr.Code)
		s.Equal("normalize frame", domainErr.Message)
	})

	s.Run("uses provided code for plain errors", func() {
		root := errors.New("dial tcp: connection refused")
		wrapped := Wrap(root, CodeUpstream, "vision request failed")

		s.True(HasCode(wrapped, CodeUpstream))
		s.True(errors.Is(wrapped, root))
	})
}

func (s *DomainErrorsSuite) TestCodeOf() {
	s.Equal(CodeExhausted, CodeOf(New(CodeExhausted, "all failed")))
	s.Equal(CodeInternal, CodeOf(errors.New("plain")))
	s.Equal(CodeInternal, CodeOf(nil))
}

func (s *DomainErrorsSuite) TestIsUpstream() {
	s.True(IsUpstream(New(CodeUpstream, "bad gateway")))
	s.True(IsUpstream(fmt.Errorf("call: %w", New(CodeUpstreamTimeout, "deadline"))))
	s.False(IsUpstream(New(CodeDecode, "bad image")))
	s.False(IsUpstream(nil))
}
