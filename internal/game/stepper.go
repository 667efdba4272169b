package game

import "time"

// Stepper turns variable frame times into a whole number of fixed steps.
// Time left over carries into the next frame.
type Stepper struct {
	Step time.Duration
	// MaxSteps bounds the catch-up work after a stall. Extra time is dropped.
	MaxSteps int

	acc time.Duration
}

// Advance adds elapsed to the accumulator and calls fn once per whole step.
// It returns the number of steps taken and stops at the first error.
func (s *Stepper) Advance(elapsed time.Duration, fn func(dt time.Duration) error) (int, error) {
	if s.Step <= 0 {
		return 0, nil
	}
	s.acc += elapsed
	n := 0
	for s.acc >= s.Step {
		if s.MaxSteps > 0 && n == s.MaxSteps {
			s.acc = 0
			break
		}
		s.acc -= s.Step
		n++
		if err := fn(s.Step); err != nil {
			return n, err
		}
	}
	return n, nil
}
