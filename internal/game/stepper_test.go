package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStepperCarriesRemainder(t *testing.T) {
	s := &Stepper{Step: 10 * time.Millisecond}
	var got []time.Duration
	record := func(dt time.Duration) error {
		got = append(got, dt)
		return nil
	}

	n, err := s.Advance(25*time.Millisecond, record)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = s.Advance(5*time.Millisecond, record)
	require.NoError(t, err)
	require.Equal(t, 1, n, "the 5ms remainder completes a step")

	n, err = s.Advance(time.Millisecond, record)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, []time.Duration{s.Step, s.Step, s.Step}, got)
}

func TestStepperMaxSteps(t *testing.T) {
	s := &Stepper{Step: 10 * time.Millisecond, MaxSteps: 3}
	calls := 0
	n, err := s.Advance(time.Second, func(time.Duration) error { calls++; return nil })
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, 3, calls)

	n, err = s.Advance(5*time.Millisecond, func(time.Duration) error { calls++; return nil })
	require.NoError(t, err)
	require.Zero(t, n, "a stall does not leave a backlog")
}

func TestStepperError(t *testing.T) {
	boom := errors.New("boom")
	s := &Stepper{Step: 10 * time.Millisecond}
	n, err := s.Advance(50*time.Millisecond, func(time.Duration) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, n)
}

func TestStepperZeroStep(t *testing.T) {
	s := &Stepper{}
	n, err := s.Advance(time.Second, func(time.Duration) error { t.Fatal("called"); return nil })
	require.NoError(t, err)
	require.Zero(t, n)
}
