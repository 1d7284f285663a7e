package ltime

import (
	"fmt"
	"strings"
)

// Domain identifies a logical-time representation.
// The numeric values double as wire tag bytes.
type Domain uint8

const (
	// Float64 is continuous logical time (HLAfloat64Time).
	Float64 Domain = 0x01

	// Integer64 is discrete logical time, e.g. simulation ticks (HLAinteger64Time).
	Integer64 Domain = 0x02
)

// DefaultDomain is used when a federation names no time implementation.
const DefaultDomain = Float64

// HLA names of the standard time implementations.
const (
	HLAFloat64TimeName   = "HLAfloat64Time"
	HLAInteger64TimeName = "HLAinteger64Time"
)

// Valid reports whether d is one of the known domains.
func (d Domain) Valid() bool {
	return d == Float64 || d == Integer64
}

func (d Domain) String() string {
	switch d {
	case Float64:
		return "float64"
	case Integer64:
		return "integer64"
	default:
		return fmt.Sprintf("domain(0x%02x)", uint8(d))
	}
}

// HLAName returns the IEEE 1516e name of the domain's time implementation.
func (d Domain) HLAName() string {
	switch d {
	case Float64:
		return HLAFloat64TimeName
	case Integer64:
		return HLAInteger64TimeName
	default:
		return d.String()
	}
}

// ParseDomain resolves a domain from its short name ("float64", "integer64")
// or its HLA name. Matching is case-insensitive; "" selects DefaultDomain.
func ParseDomain(name string) (Domain, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultDomain, nil
	case "float64", "float", "hlafloat64time":
		return Float64, nil
	case "integer64", "int64", "integer", "hlainteger64time":
		return Integer64, nil
	default:
		return 0, NewError(CodeParse, "parse domain", fmt.Sprintf("unknown time domain %q", name))
	}
}

// Ordering is the result of comparing two values of one domain.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return fmt.Sprintf("ordering(%d)", int(o))
	}
}

// Kind distinguishes points in time from durations.
type Kind uint8

const (
	KindTime Kind = iota + 1
	KindInterval
)

func (k Kind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindInterval:
		return "interval"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind resolves "time" or "interval" (case-insensitive).
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "time":
		return KindTime, nil
	case "interval", "lookahead":
		return KindInterval, nil
	default:
		return 0, NewError(CodeParse, "parse kind", fmt.Sprintf("unknown value kind %q", name))
	}
}

// Value is a sealed interface over Time and Interval.
// Only this package's types implement it.
type Value interface {
	Kind() Kind
	Domain() Domain
	Number() Number
	String() string

	ltimeValue() // Sealed
}
