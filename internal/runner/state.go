package runner

import (
	"fmt"

	"github.com/haberhub/scraper/internal/domain"
)

// ValidateTransition checks if a command status transition is valid.
// Returns an error if the transition is not allowed.
func ValidateTransition(from, to string) error {
	validTransitions := map[string][]string{
		domain.CommandStatusPending: {
			domain.CommandStatusProcessing, // Picked up by a run
			domain.CommandStatusFailed,     // Startup reconcile or rejected trigger
		},
		domain.CommandStatusProcessing: {
			domain.CommandStatusCompleted, // Full success
			domain.CommandStatusFailed,    // Captured error, timeout, or reconcile
		},
		// Terminal states
		domain.CommandStatusCompleted: {},
		domain.CommandStatusFailed:    {},
	}

	allowedStates, exists := validTransitions[from]
	if !exists {
		return fmt.Errorf("unknown command status: %s", from)
	}

	for _, allowed := range allowedStates {
		if allowed == to {
			return nil
		}
	}

	return fmt.Errorf("invalid command transition from %s to %s", from, to)
}
