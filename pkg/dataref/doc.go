// Package dataref implements the typed value store and name resolver at the
// heart of the simless harness.
//
// A dataref is a named, typed piece of simulator state addressed by a string
// path ("sim/cockpit2/temperature/outside_air_temp_degc"). Entries are either
// registered explicitly with a declared type, or created lazily: Find returns
// a handle for any name, backing unknown names with an untyped "dummy" entry.
// The first typed accessor used against a dummy entry promotes it — the entry
// takes the accessor's type for the rest of its life and a single change
// notification fires. Promotion is idempotent per entry.
//
// One name, one type, fixed at first use: after promotion, an accessor of a
// different type is a contract violation and returns a type-mismatch error
// rather than silently coercing.
//
// The registry is not safe for concurrent use. The harness is single-threaded
// and tick-driven; the run loop is the only driver of execution.
package dataref
