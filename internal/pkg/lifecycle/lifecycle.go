// Package lifecycle holds the lab order status transition table. Every
// mutation path must consult it instead of re-deriving legality inline.
package lifecycle

import "medilab-service/internal/pkg/constvars"

// transitions maps a source status to the set of statuses it may move to.
// completed and cancelled are terminal.
var transitions = map[string][]string{
	constvars.LabStatusOrdered:    {constvars.LabStatusCollected, constvars.LabStatusCancelled},
	constvars.LabStatusCollected:  {constvars.LabStatusProcessing, constvars.LabStatusCancelled},
	constvars.LabStatusProcessing: {constvars.LabStatusCompleted, constvars.LabStatusCancelled},
	constvars.LabStatusCompleted:  {},
	constvars.LabStatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to
// another. It is a pure function of its arguments; unknown statuses are
// never allowed.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTargets returns the statuses reachable from the given status.
func AllowedTargets(from string) []string {
	targets := transitions[from]
	out := make([]string, len(targets))
	copy(out, targets)
	return out
}

// AllowedSources returns every status from which the given status is
// reachable. Used by the repository to build compare-and-swap filters.
func AllowedSources(to string) []string {
	var sources []string
	for from, targets := range transitions {
		for _, target := range targets {
			if target == to {
				sources = append(sources, from)
			}
		}
	}
	return sources
}

// IsTerminal reports whether no transition leaves the given status.
func IsTerminal(status string) bool {
	targets, known := transitions[status]
	return known && len(targets) == 0
}

// IsKnown reports whether the status appears in the transition table.
func IsKnown(status string) bool {
	_, ok := transitions[status]
	return ok
}
