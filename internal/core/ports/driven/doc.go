// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ReferenceSource: Supplies raw reference table bytes (embedded or file)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ScenarioStore: Saved calculation persistence. Without it, scenarios are disabled.
//   - ReportExporter: Writes a scenario report in one format.
//   - PlanReader: Decodes media plan files.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
