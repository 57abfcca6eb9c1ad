// Package manifest provides the handler manifest model and parsers for the
// formats the host scanner accepts.
package manifest

import (
	"fmt"

	"github.com/eventhost-dev/eventhost-sdk/plugin/entities"
	"github.com/eventhost-dev/eventhost-sdk/plugin/values"
)

// Kind is the document kind manifests register under in the schema catalog.
const Kind = "handler-manifest"

// Manifest describes one handler implementation as declared by its vendor.
// It is the wire form of a candidate type; ToCandidate converts it into the
// immutable descriptor the registry consumes.
type Manifest struct {
	// Name is the handler identifier, unique within a host.
	Name string `yaml:"name" json:"name" jsonschema:"required,minLength=1"`

	// Origin is the vendor origin in reverse-DNS form.
	Origin string `yaml:"origin" json:"origin" jsonschema:"required,minLength=1"`

	// Version is the handler's semantic version.
	Version string `yaml:"version" json:"version" jsonschema:"required,minLength=1"`

	// Weight is the ordering key; lower runs earlier. Absent means 0.
	Weight *int `yaml:"weight,omitempty" json:"weight,omitempty"`

	// Capabilities lists the contracts the handler declares.
	Capabilities []string `yaml:"capabilities" json:"capabilities" jsonschema:"required,minItems=1"`

	// Requires constrains the host versions the handler supports, as a
	// semver range. Empty means any host.
	Requires string `yaml:"requires,omitempty" json:"requires,omitempty"`

	// Description is a human-readable summary.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ToCandidate validates the manifest fields and converts them into a
// candidate descriptor. The core tag is stamped when the manifest origin is
// one of the host's trusted core origins.
func (m *Manifest) ToCandidate(coreOrigins []values.Origin) (entities.CandidateType, error) {
	name, err := values.NewHandlerName(m.Name)
	if err != nil {
		return entities.CandidateType{}, fmt.Errorf("manifest name: %w", err)
	}

	origin, err := values.NewOrigin(m.Origin)
	if err != nil {
		return entities.CandidateType{}, fmt.Errorf("manifest origin: %w", err)
	}

	caps := make([]values.Capability, 0, len(m.Capabilities))
	for _, c := range m.Capabilities {
		switch values.Capability(c) {
		case values.CapabilityApplicationEvents, values.CapabilityLegacyStartup:
			caps = append(caps, values.Capability(c))
		default:
			return entities.CandidateType{}, fmt.Errorf("manifest %s: unknown capability %q", m.Name, c)
		}
	}
	if len(caps) == 0 {
		return entities.CandidateType{}, fmt.Errorf("manifest %s: no capabilities declared", m.Name)
	}

	weight := values.DefaultWeight
	if m.Weight != nil {
		weight = values.NewWeight(*m.Weight)
	}

	core := false
	for _, trusted := range coreOrigins {
		if origin.Equals(trusted) {
			core = true
			break
		}
	}

	return entities.NewCandidateType(name, origin, m.Version, weight, caps, core), nil
}
