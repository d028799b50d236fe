package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	dErrors "kycscan/pkg/domain-errors"
)

type JWTSuite struct {
	suite.Suite
	svc *Service
}

func TestJWTSuite(t *testing.T) {
	suite.Run(t, new(JWTSuite))
}

func (s *JWTSuite) SetupTest() {
	s.svc = NewService("test-signing-key", "kycscan-client")
}

func (s *JWTSuite) TestRoundTrip() {
	token, err := s.svc.Issue("agent-7", []string{"kyc:extract"}, time.Minute, time.Now())
	s.Require().NoError(err)

	claims, err := s.svc.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal("agent-7", claims.Subject)
	s.Equal([]string{"kyc:extract"}, claims.Scope)
	s.NotEmpty(claims.JTI)
}

func (s *JWTSuite) TestRejects() {
	s.Run("expired token", func() {
		token, err := s.svc.Issue("agent-7", nil, time.Minute, time.Now().Add(-time.Hour))
		s.Require().NoError(err)

		_, err = s.svc.ValidateToken(token)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Equal("token expired", err.Error())
	})

	s.Run("wrong signing key", func() {
		other := NewService("another-key", "kycscan-client")
		token, err := other.Issue("agent-7", nil, time.Minute, time.Now())
		s.Require().NoError(err)

		_, err = s.svc.ValidateToken(token)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("wrong audience", func() {
		other := NewService("test-signing-key", "someone-else")
		token, err := other.Issue("agent-7", nil, time.Minute, time.Now())
		s.Require().NoError(err)

		_, err = s.svc.ValidateToken(token)
		s.Error(err)
	})

	s.Run("none algorithm", func() {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "agent-7",
			Audience:  jwt.ClaimStrings{"kycscan-client"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		s.Require().NoError(err)

		_, err = s.svc.ValidateToken(raw)
		s.Error(err)
	})

	s.Run("empty token", func() {
		_, err := s.svc.ValidateToken("")
		s.Error(err)
	})
}
