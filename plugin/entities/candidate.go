// Package entities holds the domain objects of the handler registry:
// candidate type descriptors and the registry error taxonomy.
package entities

import (
	"fmt"
	"strings"

	"github.com/eventhost-dev/eventhost-sdk/plugin/values"
)

// CandidateType describes one discovered handler implementation before any
// instance of it exists. Captured once by the registry at construction and
// never mutated: capability membership and the core tag are declared by the
// registrar, not inferred from the type at resolution time.
type CandidateType struct {
	name         values.HandlerName
	origin       values.Origin
	version      string
	weight       values.Weight
	capabilities []values.Capability
	core         bool
}

// NewCandidateType creates an immutable candidate descriptor.
// The capabilities slice is copied so later mutation by the caller cannot
// leak into the descriptor.
func NewCandidateType(
	name values.HandlerName,
	origin values.Origin,
	version string,
	weight values.Weight,
	capabilities []values.Capability,
	core bool,
) CandidateType {
	caps := make([]values.Capability, len(capabilities))
	copy(caps, capabilities)
	return CandidateType{
		name:         name,
		origin:       origin,
		version:      version,
		weight:       weight,
		capabilities: caps,
		core:         core,
	}
}

// Name returns the handler identifier.
func (c CandidateType) Name() values.HandlerName {
	return c.name
}

// Origin returns the vendor origin.
func (c CandidateType) Origin() values.Origin {
	return c.origin
}

// Version returns the declared handler version.
func (c CandidateType) Version() string {
	return c.version
}

// Weight returns the ordering key.
func (c CandidateType) Weight() values.Weight {
	return c.weight
}

// Capabilities returns a copy of the declared capability kinds.
func (c CandidateType) Capabilities() []values.Capability {
	caps := make([]values.Capability, len(c.capabilities))
	copy(caps, c.capabilities)
	return caps
}

// Declares reports whether the candidate declares the given capability.
func (c CandidateType) Declares(capability values.Capability) bool {
	for _, declared := range c.capabilities {
		if declared == capability {
			return true
		}
	}
	return false
}

// Core reports whether the registrar tagged this candidate as
// platform-core. Core handlers are pinned to the front of the final
// ordering regardless of external filtering.
func (c CandidateType) Core() bool {
	return c.core
}

// String returns a human-readable descriptor for logs and errors.
func (c CandidateType) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/%s", c.origin.String(), c.name.String())
	if c.version != "" {
		fmt.Fprintf(&b, "@%s", c.version)
	}
	return b.String()
}
