// Package minterm is a diff-based terminal rendering engine.
//
// It maintains an in-memory model of what the screen should display,
// compares it against what was last displayed, and emits the minimal
// sequence of cursor moves, glyphs, and SGR codes needed to reconcile
// the two. Concrete terminal devices sit behind the Backend interface.
package minterm
