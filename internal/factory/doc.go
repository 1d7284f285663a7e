// Package factory is the single entry point for building logical time values.
//
// A Factory is bound to one federation: its time domain and its Float64
// tolerance (epsilon) are fixed when the federate joins and never change for
// the session. Every Time and Interval the Factory hands out has passed the
// same validation pipeline, in this order:
//
//  1. domain check      - the value belongs to the federation's domain
//  2. range check       - literals fit the native type; Float64 is finite
//  3. non-negativity    - intervals only
//  4. normalization     - Float64 values closer than epsilon to zero become exactly 0
//
// The order is fixed so that a value violating several rules always reports
// the same error.
//
// The Factory also exposes the operations the time-advancement protocol is
// allowed to use: Compare, Add, Subtract, Difference, IsZero, IsInitial and
// Epsilon. These run the pipeline on their results too.
//
// A Factory is immutable and safe for concurrent use.
package factory
