// Package diag defines the diagnostic model shared by the partitioner,
// lexer and parser.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: numeric identifier; 1xxx are lexical errors, 2xxx syntax errors.
//   - Message: short human text.
//   - Primary: source.Span of the offending text. Primary.Start is the byte
//     offset every error is required to carry.
//   - Rules: the grammar rule stack active when the error was recorded,
//     outermost first.
//   - Notes: optional secondary spans.
//
// # Emitting diagnostics
//
// Phases report through a Reporter so emission is decoupled from storage.
// BagReporter collects into a Bag, which sorts and deduplicates.
//
// A parse that fails also returns an *Error wrapping the Diagnostic, so
// callers that only care about success can use plain error handling and
// errors.As. Package diag performs no formatting or IO; rendering lives in
// internal/diagfmt.
package diag
