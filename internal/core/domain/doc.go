// Package domain defines the core business entities for netreach.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - AudienceProfile: A structured target audience parsed from free text
//   - ReferenceRow: One historical audience observation with channel reaches
//   - PlanItem: A media channel and its individual reach
//   - CalculationResult: The full net reach estimate with diagnostics
//   - Scenario: A saved calculation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
