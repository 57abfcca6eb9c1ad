package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_NewHandlerName tests that valid handler names are accepted
func Test_NewHandlerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "audit-log", "audit-log", false},
		{"valid underscore", "cache_warmer", "cache_warmer", false},
		{"invalid char @", "audit@1.0.0", "", true},
		{"invalid dot", "audit.log", "", true},
		{"path separator", "audit/log", "", true},
		{"trims whitespace", "  audit  ", "audit", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hn, err := NewHandlerName(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, hn.String())
			}
		})
	}
}

func Test_MustNewHandlerName(t *testing.T) {
	hn := MustNewHandlerName("audit")
	assert.Equal(t, "audit", hn.String())
}

func Test_MustNewHandlerName_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewHandlerName("")
	})
}

func Test_HandlerName_IsEmpty(t *testing.T) {
	zero := HandlerName{}
	assert.True(t, zero.IsEmpty())

	nonZero := MustNewHandlerName("audit")
	assert.False(t, nonZero.IsEmpty())
}

func Test_HandlerName_Equals(t *testing.T) {
	hn1 := MustNewHandlerName("audit")
	hn2 := MustNewHandlerName("metrics")
	hn3 := MustNewHandlerName("audit")

	assert.False(t, hn1.Equals(hn2))
	assert.True(t, hn1.Equals(hn3))
}

func Test_HandlerName_JSON(t *testing.T) {
	original := MustNewHandlerName("audit")

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"audit"`, string(data))

	var decoded HandlerName
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equals(decoded))
}

func Test_HandlerName_JSON_Invalid(t *testing.T) {
	var decoded HandlerName
	assert.Error(t, json.Unmarshal([]byte(`"bad/name"`), &decoded))
}
