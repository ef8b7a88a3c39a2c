package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-d", "arvo.db"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-d", "arvo.db"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "both forms present, order preserved",
			args:         []string{"--config=first.json", "-c", "second.json", "-x", "1"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=first.json", "-c", "second.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag has no value",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowedFlags)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJSONConfigFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short form", []string{"arvo", "-c", "conf.json"}, "conf.json"},
		{"long form", []string{"arvo", "-config", "conf.json"}, "conf.json"},
		{"equals form", []string{"arvo", "--config=conf.json"}, "conf.json"},
		{"absent", []string{"arvo", "-d", "arvo.db"}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()
			os.Args = tc.args

			assert.Equal(t, tc.want, JSONConfigFlag())
		})
	}
}
