// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The filter and grouping functions are pure: they never mutate events
// and derive the same output for the same inputs.
package services
