// Package io provides the devices attached to the LS-8 processor: the ROM
// image loaded at address zero, and the console that receives PRN output.
package io

// Console receives values printed by the processor.
type Console interface {
	// Rewind resets the console to its initial state.
	Rewind()
	// Print emits a single register value.
	Print(value byte) error
}
