package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhost-dev/eventhost-sdk/plugin/values"
)

const yamlManifest = `
name: audit-log
origin: dev.eventhost
version: 1.2.0
weight: -10
capabilities:
  - application-events
requires: ">= 1.0"
description: Writes an audit trail for lifecycle events.
`

const jsonManifest = `{
  "name": "audit-log",
  "origin": "dev.eventhost",
  "version": "1.2.0",
  "capabilities": ["application-events", "legacy-startup"]
}`

func Test_YamlParser(t *testing.T) {
	m, err := NewYamlParser().Parse([]byte(yamlManifest))
	require.NoError(t, err)

	assert.Equal(t, "audit-log", m.Name)
	assert.Equal(t, "dev.eventhost", m.Origin)
	assert.Equal(t, "1.2.0", m.Version)
	require.NotNil(t, m.Weight)
	assert.Equal(t, -10, *m.Weight)
	assert.Equal(t, []string{"application-events"}, m.Capabilities)
	assert.Equal(t, ">= 1.0", m.Requires)
}

func Test_YamlParser_Malformed(t *testing.T) {
	_, err := NewYamlParser().Parse([]byte("name: [unclosed"))
	assert.Error(t, err)
}

func Test_JSONParser(t *testing.T) {
	m, err := NewJSONParser().Parse([]byte(jsonManifest))
	require.NoError(t, err)

	assert.Equal(t, "audit-log", m.Name)
	assert.Nil(t, m.Weight)
	assert.Len(t, m.Capabilities, 2)
}

func Test_JSONParser_Malformed(t *testing.T) {
	_, err := NewJSONParser().Parse([]byte("{"))
	assert.Error(t, err)
}

func Test_ToCandidate(t *testing.T) {
	core := []values.Origin{values.MustNewOrigin("dev.eventhost")}

	tests := []struct {
		name     string
		manifest Manifest
		wantErr  bool
	}{
		{
			name: "valid",
			manifest: Manifest{
				Name: "audit", Origin: "dev.eventhost", Version: "1.0.0",
				Capabilities: []string{"application-events"},
			},
		},
		{
			name: "unknown capability",
			manifest: Manifest{
				Name: "audit", Origin: "dev.eventhost", Version: "1.0.0",
				Capabilities: []string{"time-travel"},
			},
			wantErr: true,
		},
		{
			name: "no capabilities",
			manifest: Manifest{
				Name: "audit", Origin: "dev.eventhost", Version: "1.0.0",
			},
			wantErr: true,
		},
		{
			name: "bad name",
			manifest: Manifest{
				Name: "audit/log", Origin: "dev.eventhost", Version: "1.0.0",
				Capabilities: []string{"application-events"},
			},
			wantErr: true,
		},
		{
			name: "bad origin",
			manifest: Manifest{
				Name: "audit", Origin: "Not An Origin", Version: "1.0.0",
				Capabilities: []string{"application-events"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.manifest.ToCandidate(core)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_ToCandidate_CoreStamping(t *testing.T) {
	core := []values.Origin{values.MustNewOrigin("dev.eventhost")}

	trusted := Manifest{
		Name: "audit", Origin: "dev.eventhost", Version: "1.0.0",
		Capabilities: []string{"application-events"},
	}
	c, err := trusted.ToCandidate(core)
	require.NoError(t, err)
	assert.True(t, c.Core())

	thirdParty := Manifest{
		Name: "metrics", Origin: "com.example", Version: "1.0.0",
		Capabilities: []string{"application-events"},
	}
	c, err = thirdParty.ToCandidate(core)
	require.NoError(t, err)
	assert.False(t, c.Core())
}

func Test_ToCandidate_DefaultWeight(t *testing.T) {
	m := Manifest{
		Name: "audit", Origin: "dev.eventhost", Version: "1.0.0",
		Capabilities: []string{"application-events"},
	}
	c, err := m.ToCandidate(nil)
	require.NoError(t, err)
	assert.Equal(t, values.DefaultWeight, c.Weight())

	w := 7
	m.Weight = &w
	c, err = m.ToCandidate(nil)
	require.NoError(t, err)
	assert.Equal(t, values.NewWeight(7), c.Weight())
}
