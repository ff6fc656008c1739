package propstore

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/propkit/internal/format"
)

func fullImage() []byte {
	return format.NewBuilder().
		Add(KeyBuildFingerprint, "google/oriole/oriole:14/UQ1A.240205.004/11269751:user/release-keys").
		Add(KeyBuildTags, "release-keys").
		Add(KeyBuildType, "user").
		Add(KeyProductModel, "Pixel 6").
		Add(KeyProductBrand, "google").
		Add(KeyBuildDisplayID, "UQ1A.240205.004").
		Add(KeyBuildID, "UQ1A.240205.004").
		Add(KeyVersionIncremental, "11269751").
		Add(KeyVersionRelease, "14").
		Build()
}

func TestStoreAccessors(t *testing.T) {
	raw := fullImage()
	s, err := OpenBytes(raw, DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, 9, s.Len())
	require.Equal(t, "Pixel 6", s.DeviceModel())
	require.Equal(t, "google", s.DeviceBrand())
	require.Equal(t, "14", s.AndroidVersion())
	require.Equal(t, "UQ1A.240205.004", s.BuildID())
	require.Contains(t, s.BuildFingerprint(), "release-keys")
	require.Equal(t, "", s.Get("ro.absent"))
	_, ok := s.Lookup("ro.absent")
	require.False(t, ok)
	require.Equal(t, len(raw), s.Size())

	keys := s.Keys()
	require.IsIncreasing(t, keys)
	entries := s.Entries()
	require.Len(t, entries, len(keys))
	for i, e := range entries {
		assert.Equal(t, keys[i], e.Key)
	}

	all := s.All()
	all[KeyProductModel] = "changed"
	require.Equal(t, "Pixel 6", s.DeviceModel(), "All must return a copy")
}

func TestStoreFingerprint(t *testing.T) {
	raw := fullImage()
	s, err := OpenBytes(raw, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("%016x", xxhash.Sum64(raw)), s.Fingerprint())
	require.Len(t, s.Fingerprint(), 16)

	other := append(fullImage(), 0)
	s2, err := OpenBytes(other, DefaultOptions())
	require.NoError(t, err)
	require.NotEqual(t, s.Fingerprint(), s2.Fingerprint())

	require.Empty(t, emptyStore("").Fingerprint())
}

func TestStoreDeviceInfoSummary(t *testing.T) {
	s, err := OpenBytes(fullImage(), DefaultOptions())
	require.NoError(t, err)
	info := s.DeviceInfo()
	require.Equal(t, "Pixel 6", info.Model)
	require.Equal(t,
		"Model: Pixel 6\nBrand: google\nAndroid: 14\nFingerprint: google/oriole/oriole:14/UQ1A.240205.004/11269751:user/release-keys",
		info.Summary())
}

func TestOpenFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "u:object_r:build_prop:s0")
	require.NoError(t, os.WriteFile(path, fullImage(), 0o644))

	s, err := Open(path, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, path, s.Path())
	require.Equal(t, StrategyStructured, s.Strategy())
	require.False(t, s.CheckForTampering())
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		s, err := Open(filepath.Join(dir, "nope"), DefaultOptions())
		require.Error(t, err)
		require.True(t, IsKind(err, ErrKindIO))
		require.Zero(t, s.Len())
		require.Empty(t, s.Fingerprint())
		require.True(t, s.CheckForTampering())
	})

	t.Run("empty", func(t *testing.T) {
		path := filepath.Join(dir, "empty")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		_, err := Open(path, DefaultOptions())
		require.ErrorIs(t, err, ErrEmptyFile)
		kind, ok := KindOf(err)
		require.True(t, ok)
		require.Equal(t, ErrKindIO, kind)
	})

	t.Run("no properties", func(t *testing.T) {
		path := filepath.Join(dir, "junk")
		require.NoError(t, os.WriteFile(path, []byte("just some bytes"), 0o644))
		s, err := Open(path, DefaultOptions())
		require.ErrorIs(t, err, ErrNoProperties)
		require.NotEmpty(t, s.Fingerprint())
	})
}

func TestTypePaths(t *testing.T) {
	tests := []struct {
		typ  Type
		name string
		path string
	}{
		{TypeBuild, "build", "/dev/__properties__/u:object_r:build_prop:s0"},
		{TypeSystem, "system", "/dev/__properties__/u:object_r:system_prop:s0"},
		{TypeDefault, "default", "/dev/__properties__/u:object_r:default_prop:s0"},
		{TypeVendor, "vendor", "/dev/__properties__/u:object_r:vendor_build_prop:s0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.path, tt.typ.Path())
			assert.Equal(t, tt.name, tt.typ.String())
			assert.Equal(t, tt.typ, ParseType(tt.name))
		})
	}
	assert.Equal(t, TypeBuild, ParseType("bogus"))
}

func TestDiagnosticsDisabledByDefault(t *testing.T) {
	s, err := OpenBytes(fullImage(), DefaultOptions())
	require.NoError(t, err)
	require.Nil(t, s.Diagnostics())
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Strategy: StrategyStructured, Kind: ErrKindBounds, Offset: 0x30, Issue: "slot 2 name offset 0xFF outside buffer"}
	assert.Equal(t, "[structured/bounds] 0x30: slot 2 name offset 0xFF outside buffer", d.String())
	d.Offset = -1
	assert.Equal(t, "[structured/bounds] slot 2 name offset 0xFF outside buffer", d.String())
}
