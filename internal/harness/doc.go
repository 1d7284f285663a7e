// Package harness runs conformance scenarios against the time factory.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: integer_advance
//	description: "Advance an Integer64 federation by its lookahead"
//	federation:
//	  time_domain: HLAinteger64Time
//	steps:
//	  - op: add
//	    args: ["100", "50"]
//	    expect: { value: "150" }
//	  - op: difference
//	    args: ["3", "10"]
//	    expect: { error: INVALID_INTERVAL }
//	assertions:
//	  - type: trace_count
//	    op: add
//	    count: 1
//	  - type: error_count
//	    code: INVALID_INTERVAL
//	    count: 1
//
// Unknown keys are rejected so that typos fail loudly.
//
// # Steps
//
// Every arg is a literal in the federation's domain, or wire hex for the
// decode steps. A step without an expect clause must succeed. An expected
// value is compared as text against the formatted result, so Float64 results
// use the shortest round-trip form ("6.5", "10").
//
// # Determinism
//
// Each run gets a fresh in-memory journal whose clock starts at zero, so the
// trace and its seq numbers are identical across runs. RunWithGolden compares
// the trace, serialized as canonical JSON, against testdata/golden.
package harness
