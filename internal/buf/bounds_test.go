package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if got, ok := MulOverflowSafe(100000, 12); !ok || got != 1200000 {
		t.Fatalf("MulOverflowSafe(100000,12)=%d,%v", got, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2, 3); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := MulOverflowSafe(-1, 12); ok {
		t.Fatalf("negative operands must be rejected")
	}
}

func TestResolveDoesNotWrap(t *testing.T) {
	got, ok := Resolve(64, math.MaxUint32)
	if !ok {
		t.Fatalf("Resolve overflowed on 64-bit int")
	}
	if got != 64+math.MaxUint32 {
		t.Fatalf("Resolve wrapped: got %d", got)
	}
}

func TestCheckTableBounds(t *testing.T) {
	end, err := CheckTableBounds(100, 40, 5, 12)
	if err != nil || end != 100 {
		t.Fatalf("CheckTableBounds exact fit = %d, %v", end, err)
	}
	if _, err := CheckTableBounds(99, 40, 5, 12); err == nil {
		t.Fatalf("expected bounds error")
	}
	if _, err := CheckTableBounds(100, -1, 1, 12); err == nil {
		t.Fatalf("expected negative offset error")
	}
	if _, err := CheckTableBounds(100, 0, math.MaxInt/4, 12); err == nil {
		t.Fatalf("expected overflow error")
	}
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}
	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
}
