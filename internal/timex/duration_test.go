package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"string seconds", `"60s"`, 60 * time.Second, false},
		{"string minutes", `"15m"`, 15 * time.Minute, false},
		{"integer nanoseconds", `1000000000`, time.Second, false},
		{"bad string", `"soon"`, 0, true},
		{"bad type", `true`, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tc.in), &d)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	d := Duration{Duration: 90 * time.Second}
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(out))
}
