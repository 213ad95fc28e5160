// Package app wires a lineup session together and drives it from text
// commands.
//
// A Session owns one schedule and the history processor that mutates it.
// A Shell reads one command per line and reports failures without
// stopping, so undo on an empty history just prints an error.
package app
