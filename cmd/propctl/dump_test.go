package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDumpCommand(t *testing.T) {
	path := writeImage(t, deviceProps)

	tests := []struct {
		name           string
		format         string
		prefix         string
		entries        bool
		wantJSON       bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:           "text",
			format:         "text",
			wantContain:    []string{"ro.product.model", "Pixel 7", "ro.build.version.sdk"},
			wantNotContain: []string{"persist.sys.locale"},
		},
		{
			name:        "prop format",
			format:      "prop",
			wantContain: []string{"ro.product.brand=google\n", "ro.build.tags=release-keys\n"},
		},
		{
			name:           "prefix filter",
			format:         "prop",
			prefix:         "ro.product.",
			wantContain:    []string{"ro.product.model=Pixel 7"},
			wantNotContain: []string{"ro.build."},
		},
		{
			name:        "json flag",
			wantJSON:    true,
			wantContain: []string{`"ro.build.type": "user"`},
		},
		{
			name:        "json entries",
			format:      "json",
			entries:     true,
			wantJSON:    true,
			wantContain: []string{`"offset"`, `"ro.build.id"`},
		},
		{
			name:    "unknown format",
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t, path)
			dumpFormat = tt.format
			if dumpFormat == "" {
				dumpFormat = "text"
			}
			dumpPrefix = tt.prefix
			dumpEntries = tt.entries
			dumpDiagnostics = false
			jsonOut = tt.wantJSON && tt.format == ""

			output, err := captureOutput(t, func() error {
				return runDump(nil)
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestDumpCommandNoProperties(t *testing.T) {
	path := writeImage(t, [][2]string{{"persist.only", "1"}})
	resetFlags(t, path)
	dumpFormat = "text"
	dumpPrefix = ""
	dumpEntries = false
	dumpDiagnostics = false

	_, err := captureOutput(t, func() error {
		return runDump(nil)
	})
	require.Error(t, err)
}
