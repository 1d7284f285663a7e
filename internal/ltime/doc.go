// Package ltime provides the logical time and interval value types shared by
// every federate in an HLA-style federation.
//
// This package contains value types and their arithmetic only. It performs no
// I/O, holds no global state and imports nothing internal; the factory, codec
// and tooling packages all build on it.
//
// Key design constraints:
//   - Two interchangeable domains: Float64 (continuous) and Integer64 (discrete)
//   - Number, Time and Interval are tagged variants, never mixed across domains
//   - Values are immutable; every operation returns a new value or an error
//   - Intervals are never negative
//   - Float64 tolerance (epsilon) is passed in by the caller, never stored globally
//   - Integer64 arithmetic is checked; overflow is an error, never a wrap
package ltime
