package propstore

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/propkit/internal/format"
)

func checkStoreInvariants(t *testing.T, s *Store, ok bool) {
	t.Helper()
	require.NotNil(t, s)
	require.Equal(t, ok, s.Parsed())
	if !ok {
		require.Zero(t, s.Len())
	}
	for _, k := range s.Keys() {
		require.GreaterOrEqual(t, len(k), len(format.ReadOnlyPrefix))
		require.Equal(t, format.ReadOnlyPrefix, k[:len(format.ReadOnlyPrefix)])
	}
}

func TestParseTruncationsNeverPanic(t *testing.T) {
	b := format.NewBuilder()
	b.Lead = 7
	b.TOCGap = 16
	raw := b.Add(KeyProductModel, "Pixel7").
		Add(KeyBuildID, "UQ1A").
		AddRaw(0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF).
		Trailing([]byte("ro.product.brand=Google\x00")).
		Build()

	for n := 0; n <= len(raw); n++ {
		require.NotPanics(t, func() {
			s, ok := parseBytes(t, raw[:n], nil)
			checkStoreInvariants(t, s, ok)
		}, "prefix length %d", n)
	}
}

func TestParseRandomMutationsNeverPanic(t *testing.T) {
	base := fullImage()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		raw := append([]byte(nil), base...)
		for j := rng.Intn(8) + 1; j > 0; j-- {
			raw[rng.Intn(len(raw))] = byte(rng.Intn(256))
		}
		if rng.Intn(4) == 0 {
			raw = raw[:rng.Intn(len(raw)+1)]
		}
		require.NotPanics(t, func() {
			s, ok := parseBytes(t, raw, nil)
			checkStoreInvariants(t, s, ok)
		})
	}
}

func FuzzParseBytes(f *testing.F) {
	f.Add([]byte{})
	f.Add(make([]byte, 4))
	f.Add(fullImage())
	f.Add([]byte("ro.product.brand=Google\x00"))
	f.Add([]byte("PROP"))
	f.Fuzz(func(t *testing.T, raw []byte) {
		p := NewParser(DefaultOptions())
		ok := p.ParseBytes(raw)
		checkStoreInvariants(t, p.Store(), ok)
	})
}
