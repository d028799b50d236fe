package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type BreakerSuite struct {
	suite.Suite
	now     time.Time
	breaker *Breaker
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) SetupTest() {
	s.now = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.breaker = New("vision-api",
		WithFailureThreshold(3),
		WithCooldown(10*time.Second),
		WithClock(func() time.Time { return s.now }),
	)
}

func (s *BreakerSuite) TestOpensAfterThreshold() {
	s.False(s.breaker.RecordFailure().Opened)
	s.False(s.breaker.RecordFailure().Opened)
	s.True(s.breaker.RecordFailure().Opened)
	s.True(s.breaker.IsOpen())
	s.Equal("open", s.breaker.State().String())
	s.False(s.breaker.Allow())
}

func (s *BreakerSuite) TestSuccessResetsFailureCount() {
	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
	s.breaker.RecordSuccess()
	s.breaker.RecordFailure()
	s.False(s.breaker.IsOpen())
}

func (s *BreakerSuite) TestProbeAfterCooldown() {
	for range 3 {
		s.breaker.RecordFailure()
	}

	s.now = s.now.Add(5 * time.Second)
	s.False(s.breaker.Allow())

	s.now = s.now.Add(6 * time.Second)
	s.True(s.breaker.Allow(), "first probe after cooldown")
	s.False(s.breaker.Allow(), "only one probe per window")

	s.True(s.breaker.RecordSuccess().Closed)
	s.True(s.breaker.Allow())
}

func (s *BreakerSuite) TestFailedProbeWaitsAnotherWindow() {
	for range 3 {
		s.breaker.RecordFailure()
	}
	s.now = s.now.Add(11 * time.Second)
	s.True(s.breaker.Allow())
	s.breaker.RecordFailure()

	s.now = s.now.Add(5 * time.Second)
	s.False(s.breaker.Allow())
	s.now = s.now.Add(6 * time.Second)
	s.True(s.breaker.Allow())
}

func (s *BreakerSuite) TestReset() {
	for range 3 {
		s.breaker.RecordFailure()
	}
	s.breaker.Reset()
	s.Equal(StateClosed, s.breaker.State())
	s.True(s.breaker.Allow())
}
