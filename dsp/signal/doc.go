// Package signal defines the mono Signal buffer that flows through the effect
// chain, peak normalization, and deterministic test sources.
//
// Every effect returns a freshly allocated Signal; nothing in this module
// mutates a Signal it did not create.
package signal
