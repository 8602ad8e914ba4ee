// Package safelitetest provides helpers for testing code that drives the
// wallet: deterministic owner keys and signature helpers.
package safelitetest
