package main

import (
	"testing"
)

func TestGetCommand(t *testing.T) {
	path := writeImage(t, deviceProps)

	tests := []struct {
		name           string
		key            string
		wantErr        bool
		wantContain    []string
		wantNotContain []string
		wantJSON       bool
	}{
		{
			name:        "get model",
			key:         "ro.product.model",
			wantContain: []string{"Pixel 7"},
		},
		{
			name:        "get fingerprint",
			key:         "ro.build.fingerprint",
			wantContain: []string{"google/panther/panther:14"},
		},
		{
			name:        "get as JSON",
			key:         "ro.build.tags",
			wantJSON:    true,
			wantContain: []string{`"ro.build.tags"`, "release-keys"},
		},
		{
			name:    "non ro key is filtered",
			key:     "persist.sys.locale",
			wantErr: true,
		},
		{
			name:    "missing key",
			key:     "ro.nonexistent",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t, path)
			jsonOut = tt.wantJSON

			output, err := captureOutput(t, func() error {
				return runGet([]string{tt.key})
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runGet() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestGetCommandUnreadableFile(t *testing.T) {
	resetFlags(t, "/nonexistent/build_prop")
	_, err := captureOutput(t, func() error {
		return runGet([]string{"ro.product.model"})
	})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
