package openai

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"github.com/talentscout/resumatch/core"
)

const (
	breakerFailureRatio = 0.6
	breakerMinRequests  = 3
	breakerOpenTimeout  = 30 * time.Second
)

// newBreaker creates a circuit breaker for one provider service. The
// breaker trips when the recent failure ratio crosses the threshold, so a
// dead provider fails fast instead of stalling every worker on timeouts.
func newBreaker(name string, logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= breakerMinRequests && failureRatio >= breakerFailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// asProviderError maps transport and breaker failures onto
// core.ErrProviderUnavailable so callers can degrade on it.
func asProviderError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: circuit breaker open: %v", core.ErrProviderUnavailable, err)
	}
	return fmt.Errorf("%w: %v", core.ErrProviderUnavailable, err)
}
