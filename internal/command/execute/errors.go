package execute

import "fmt"

// StrategyAttempt captures one failed strategy.
type StrategyAttempt struct {
	Strategy string
	Err      error
}

// AllStrategiesFailedError is returned when no strategy succeeded.
type AllStrategiesFailedError struct {
	Attempts []StrategyAttempt
}

func (e *AllStrategiesFailedError) Error() string {
	if len(e.Attempts) == 0 {
		return "all strategies failed: no strategies configured"
	}
	last := e.Last()
	return fmt.Sprintf("all %d strategies failed, last %q: %v", len(e.Attempts), last.Strategy, last.Err)
}

// Last returns the final attempt.
func (e *AllStrategiesFailedError) Last() StrategyAttempt {
	if len(e.Attempts) == 0 {
		return StrategyAttempt{}
	}
	return e.Attempts[len(e.Attempts)-1]
}

func (e *AllStrategiesFailedError) Unwrap() error {
	return e.Last().Err
}
