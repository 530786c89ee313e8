// Package calc holds the pure financial derivations used across the finance
// domain: balance due and payment status, cash-flow totals, aging buckets and
// display formatting.
//
// Every function is deterministic for its inputs. Functions that depend on the
// current date come in two forms: an "At" variant that takes the reference time
// explicitly, and a convenience wrapper that uses time.Now.
//
// Monetary inputs are decimal.Decimal. Values that arrive from loosely typed
// sources (JSON strings, empty form fields) go through ParseAmount, which never
// fails: anything unparseable becomes an invalid Amount and counts as zero.
package calc
