// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle: resolving which puzzles to
// solve, reading and parsing their rotations, turning the dial, and writing
// the report. It is decoupled from the CLI entrypoint.
package app
