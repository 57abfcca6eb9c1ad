package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewOrigin(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "dev.eventhost", "dev.eventhost", false},
		{"valid deep", "com.example.metrics", "com.example.metrics", false},
		{"valid hyphen", "io.my-vendor", "io.my-vendor", false},
		{"single label", "localvendor", "localvendor", false},
		{"trims whitespace", " dev.eventhost ", "dev.eventhost", false},
		{"uppercase", "Dev.Eventhost", "", true},
		{"empty label", "dev..eventhost", "", true},
		{"trailing dot", "dev.eventhost.", "", true},
		{"invalid char", "dev.event_host", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOrigin(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, o.String())
			}
		})
	}
}

func Test_MustNewOrigin_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewOrigin("Not Valid")
	})
}

func Test_Origin_Equals(t *testing.T) {
	o1 := MustNewOrigin("dev.eventhost")
	o2 := MustNewOrigin("dev.foundation")
	o3 := MustNewOrigin("dev.eventhost")

	assert.False(t, o1.Equals(o2))
	assert.True(t, o1.Equals(o3))
	assert.False(t, o1.IsEmpty())
	assert.True(t, Origin{}.IsEmpty())
}

func Test_Weight_Ordering(t *testing.T) {
	assert.True(t, NewWeight(-5).Less(NewWeight(0)))
	assert.True(t, NewWeight(0).Less(NewWeight(10)))
	assert.False(t, NewWeight(10).Less(NewWeight(10)))
	assert.Equal(t, 0, DefaultWeight.Int())
	assert.Equal(t, "42", NewWeight(42).String())
}
