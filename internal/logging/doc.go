// Package logging provides concrete implementations of the vaxstat.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr (or any io.Writer) with serialized output
//   - NullLogger: Discards all messages (useful for testing)
//
// Diagnostics always go through a Logger; command results are written to stdout
// by the caller so that they can be piped.
package logging
