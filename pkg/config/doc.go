// Package config loads and validates OrgForge batch documents.
//
// A batch document is a YAML file grouping configuration operations by
// category, plus the failure policy flag. Parsing is strict: unknown fields
// are rejected. A document that fails parsing or validation maps to the
// engine's ConfigurationFileInvalid error, which is fatal for the run.
package config
