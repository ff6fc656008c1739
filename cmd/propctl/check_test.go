package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand(t *testing.T) {
	placeholder := append(without(deviceProps, "ro.build.tags"), [2]string{"ro.build.tags", "unknown"})

	tests := []struct {
		name         string
		props        [][2]string
		wantTampered bool
		wantJSON     bool
		wantContain  []string
	}{
		{
			name:        "clean device",
			props:       deviceProps,
			wantContain: []string{"All critical properties present", "structured"},
		},
		{
			name:         "missing model",
			props:        without(deviceProps, "ro.product.model"),
			wantTampered: true,
			wantContain:  []string{"ro.product.model: missing", "Tampering detected (1 of 8"},
		},
		{
			name:         "placeholder tags",
			props:        placeholder,
			wantTampered: true,
			wantContain:  []string{"ro.build.tags: placeholder"},
		},
		{
			name:         "json",
			props:        without(deviceProps, "ro.build.id"),
			wantTampered: true,
			wantJSON:     true,
			wantContain:  []string{`"tampered": true`, `"key": "ro.build.id"`, `"reason": "missing"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t, writeImage(t, tt.props))
			jsonOut = tt.wantJSON

			output, err := captureOutput(t, func() error {
				return runCheck(nil)
			})
			if tt.wantTampered {
				assert.True(t, errors.Is(err, errDetected))
			} else {
				require.NoError(t, err)
			}
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestCheckCommandUnparseable(t *testing.T) {
	resetFlags(t, "/nonexistent/build_prop")

	output, err := captureOutput(t, func() error {
		return runCheck(nil)
	})
	assert.ErrorIs(t, err, errDetected)
	assertContains(t, output, []string{"Parse failed", "Tampering detected (8 of 8"})
}
