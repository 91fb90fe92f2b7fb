// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The calculation pipeline lives in reference.go, audience.go,
// overlap.go, incremental.go and diagnostics.go as pure functions;
// CalculatorService wires them to a reference source.
package services
