package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/keycalc/internal/domain"
)

func TestSession_ChainedEntry(t *testing.T) {
	s := newTestSession(healthyRemote(), nil)

	press(t, s, "2", "+", "3", "+", "5", "=")

	d := s.Display()
	assert.Equal(t, "10", d.Text)
	assert.Empty(t, d.Error)
	assert.Empty(t, d.Pending)
	assert.False(t, d.Offline)
	assert.False(t, d.Calculating)
}

func TestSession_EqualsWithoutOperatorIsNoop(t *testing.T) {
	remote := healthyRemote()
	s := newTestSession(remote, nil)

	press(t, s, "C", "1", "2", "3")
	before := s.Display()
	press(t, s, "=")

	assert.Equal(t, before, s.Display())
	assert.Equal(t, 0, remote.Calls())
}

func TestSession_RepeatEqualsKeepsResult(t *testing.T) {
	remote := healthyRemote()
	s := newTestSession(remote, nil)

	press(t, s, "9", "×", "9", "=")
	require.Equal(t, "81", s.Display().Text)

	press(t, s, "=")
	assert.Equal(t, "81", s.Display().Text)
	assert.Equal(t, 1, remote.Calls())
}

func TestSession_PendingIndicator(t *testing.T) {
	s := newTestSession(healthyRemote(), nil)

	press(t, s, "9", "×")
	assert.Equal(t, "9 ×", s.Display().Pending)

	press(t, s, "9", "=")
	assert.Empty(t, s.Display().Pending)
}

func TestSession_ClearMidEntry(t *testing.T) {
	s := newTestSession(healthyRemote(), nil)

	press(t, s, "4", "5", "C")

	d := s.Display()
	assert.Equal(t, "0", d.Text)
	assert.Empty(t, d.Pending)
	_, _, pending := domain.Pending(s.machine.State())
	assert.False(t, pending)
}

func TestSession_ClearIdempotent(t *testing.T) {
	s := newTestSession(healthyRemote(), nil)
	press(t, s, "7", "+", "2")

	s.Clear()
	once := s.Display()
	s.Clear()

	assert.Equal(t, once, s.Display())
}

func TestSession_FallbackIsTransparent(t *testing.T) {
	remote := downRemote()
	s := newTestSession(remote, nil)

	press(t, s, "6", "×", "7", "=")

	d := s.Display()
	assert.Equal(t, "42", d.Text)
	assert.Empty(t, d.Error, "ServiceUnavailable must not surface on the triggering call")
	assert.True(t, d.Offline)

	remote.fn = healthyRemote().fn
	press(t, s, "+", "1", "=")
	assert.Equal(t, "43", s.Display().Text)
	assert.Equal(t, 1, remote.Calls())
}

func TestSession_DivisionByZeroLocalOnly(t *testing.T) {
	s := newTestSession(nil, nil)
	require.Equal(t, domain.ModeLocalOnly, s.Mode())

	press(t, s, "5", "÷", "0", "=")

	d := s.Display()
	assert.Equal(t, "Cannot divide by zero", d.Text)
	assert.Equal(t, "Cannot divide by zero", d.Error)
	assert.Equal(t, domain.NewIdle(), s.machine.State())
	assert.True(t, d.Offline)

	press(t, s, "7")
	d = s.Display()
	assert.Equal(t, "7", d.Text)
	assert.Empty(t, d.Error)
	assert.Empty(t, d.Pending)
}

func TestSession_ServiceErrorSurfacedVerbatim(t *testing.T) {
	s := newTestSession(failingRemote("divisor must not be zero"), nil)

	press(t, s, "5", "÷", "0", "+")

	d := s.Display()
	assert.Equal(t, "divisor must not be zero", d.Text)
	assert.False(t, d.Offline)
	assert.Empty(t, d.Pending)
}

func TestSession_EqualsKeepsError(t *testing.T) {
	s := newTestSession(nil, nil)
	press(t, s, "1", "÷", "0", "=")
	require.NotEmpty(t, s.Display().Error)

	press(t, s, "=")
	assert.Equal(t, "Cannot divide by zero", s.Display().Text)
}

func TestSession_OperatorClearsError(t *testing.T) {
	s := newTestSession(nil, nil)
	press(t, s, "1", "÷", "0", "=", "+")

	d := s.Display()
	assert.Empty(t, d.Error)
	assert.Equal(t, "0 +", d.Pending)
}

func TestSession_DropsEventsWhileCalculating(t *testing.T) {
	remote := newBlockingEvaluator(domain.Success(5))
	s := newTestSession(remote, nil)
	press(t, s, "2", "+", "3")

	done := make(chan error, 1)
	go func() { done <- s.Equals(context.Background()) }()

	select {
	case <-remote.started:
	case <-time.After(2 * time.Second):
		t.Fatal("calculation did not start")
	}

	assert.True(t, s.Display().Calculating)
	assert.ErrorIs(t, s.ChooseOperator(context.Background(), domain.OpMultiply), domain.ErrBusy)
	assert.ErrorIs(t, s.Equals(context.Background()), domain.ErrBusy)
	assert.ErrorIs(t, s.InputDigit('9'), domain.ErrBusy)
	assert.ErrorIs(t, s.InputDecimal(), domain.ErrBusy)
	assert.ErrorIs(t, s.ToggleSign(), domain.ErrBusy)
	assert.ErrorIs(t, s.Percent(), domain.ErrBusy)
	assert.Equal(t, "3", s.Display().Text, "dropped input must not change the buffer")

	close(remote.release)
	require.NoError(t, <-done)

	d := s.Display()
	assert.False(t, d.Calculating)
	assert.Equal(t, "5", d.Text)
}

func TestSession_ClearDuringCalculationDiscardsResult(t *testing.T) {
	remote := newBlockingEvaluator(domain.Success(5))
	s := newTestSession(remote, nil)
	press(t, s, "2", "+", "3")

	done := make(chan error, 1)
	go func() { done <- s.Equals(context.Background()) }()
	<-remote.started

	s.Clear()
	assert.Equal(t, "0", s.Display().Text)
	assert.True(t, s.Display().Calculating, "the call is still outstanding")

	close(remote.release)
	require.NoError(t, <-done)

	d := s.Display()
	assert.False(t, d.Calculating)
	assert.Equal(t, "0", d.Text)
	assert.Empty(t, d.Pending)

	press(t, s, "4")
	assert.Equal(t, "4", s.Display().Text)
}

func TestSession_CalculatingResetWhenEvaluatorPanics(t *testing.T) {
	remote := &countingEvaluator{fn: func(float64, float64, domain.Operator) domain.Outcome {
		panic("evaluator bug")
	}}
	s := newTestSession(remote, nil)
	press(t, s, "2", "+", "3")

	assert.Panics(t, func() { _ = s.Equals(context.Background()) })

	assert.False(t, s.Display().Calculating)
	assert.Equal(t, "3", s.Display().Text)
	press(t, s, "C", "1")
	assert.Equal(t, "1", s.Display().Text)
}

func TestSession_RendersEveryChange(t *testing.T) {
	r := &recordingRenderer{}
	s := newTestSession(healthyRemote(), r)

	press(t, s, "2", "+", "3", "=")

	frames := r.Frames()
	require.Len(t, frames, 5)
	assert.Equal(t, "2", frames[0].Text)
	assert.Equal(t, "2 +", frames[1].Pending)
	assert.Equal(t, "3", frames[2].Text)
	assert.True(t, frames[3].Calculating)
	assert.False(t, frames[4].Calculating)
	assert.Equal(t, "5", frames[4].Text)
	assert.Equal(t, s.ID(), frames[4].SessionID)
}

func TestSession_InvalidInput(t *testing.T) {
	s := newTestSession(healthyRemote(), nil)

	assert.True(t, errors.Is(s.InputDigit('a'), domain.ErrUnknownKey))
	assert.ErrorIs(t, s.Press(context.Background(), domain.Key{}), domain.ErrUnknownKey)
	assert.Equal(t, "0", s.Display().Text)
}

func TestSession_InvalidOperatorRejected(t *testing.T) {
	remote := healthyRemote()
	s := newTestSession(remote, nil)
	press(t, s, "2", "+", "3")

	err := s.Press(context.Background(), domain.Key{Kind: domain.KeyOperator})
	assert.ErrorIs(t, err, domain.ErrUnknownKey)
	assert.ErrorIs(t, s.ChooseOperator(context.Background(), domain.Operator(99)), domain.ErrUnknownKey)

	d := s.Display()
	assert.Equal(t, "3", d.Text)
	assert.Equal(t, "2 +", d.Pending)
	assert.Equal(t, 0, remote.Calls())

	press(t, s, "=")
	assert.Equal(t, "5", s.Display().Text)
}

func TestSession_IDs(t *testing.T) {
	a := newTestSession(healthyRemote(), nil)
	b := newTestSession(healthyRemote(), nil)

	assert.NotEqual(t, a.ID(), b.ID())
	parsed, err := uuid.Parse(a.ID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
