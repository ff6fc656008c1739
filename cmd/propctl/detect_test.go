package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/propkit/pkg/detect"
)

type stubCheck struct {
	name string
	cat  detect.Category
	hit  bool
}

func (s stubCheck) Name() string                         { return s.name }
func (s stubCheck) Category() detect.Category            { return s.cat }
func (s stubCheck) Detect(context.Context) (bool, error) { return s.hit, nil }

func TestSelectChecks(t *testing.T) {
	all := []detect.Check{
		stubCheck{name: "frida_port", cat: detect.CategoryHook},
		stubCheck{name: "su_binary", cat: detect.CategoryRoot},
		stubCheck{name: "maps", cat: detect.CategoryHook},
		stubCheck{name: "property_tamper", cat: detect.CategoryProperty},
	}

	tests := []struct {
		category string
		want     []string
		wantErr  bool
	}{
		{category: "", want: []string{"frida_port", "su_binary", "maps", "property_tamper"}},
		{category: "hook", want: []string{"frida_port", "maps"}},
		{category: "root", want: []string{"su_binary"}},
		{category: "property", want: []string{"property_tamper"}},
		{category: "kernel", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got, err := selectChecks(all, tt.category)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.Name())
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestDetectCommandUnknownCategory(t *testing.T) {
	resetFlags(t, writeImage(t, deviceProps))
	detectCategory = "kernel"
	defer func() { detectCategory = "" }()

	_, err := captureOutput(t, func() error {
		return runDetect(context.Background(), nil)
	})
	require.Error(t, err)
}
