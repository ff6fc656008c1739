package format

import (
	"testing"

	"github.com/joshuapare/propkit/internal/buf"
)

func TestBuilderLayout(t *testing.T) {
	b := NewBuilder()
	b.Lead = 10
	b.TOCGap = 8
	img := b.Add("ro.product.model", "Pixel7").Build()

	hdr, off, err := Locate(img)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if off != 10 {
		t.Fatalf("header offset = %d, want 10", off)
	}
	if hdr.TOCOffset != 8 || hdr.NumSlots != 1 {
		t.Fatalf("header = %+v", hdr)
	}

	dataStart := DataStart(off)
	toc := dataStart + int(hdr.TOCOffset)
	nameRel, _ := buf.U32At(img, toc+EntryNameOffset)
	valRel, _ := buf.U32At(img, toc+EntryValueOffset)
	size, _ := buf.U32At(img, toc+EntrySizeOffset)

	if got := string(buf.CString(img, dataStart+int(nameRel))); got != "ro.product.model" {
		t.Fatalf("name = %q", got)
	}
	if got := string(buf.CString(img, dataStart+int(valRel))); got != "Pixel7" {
		t.Fatalf("value = %q", got)
	}
	if size != 6 {
		t.Fatalf("size = %d", size)
	}
}

func TestBuilderRawAndForcedSlots(t *testing.T) {
	img := NewBuilder().AddRaw(0xFFFFFF00, 4, 0).ForceSlots(3).Trailing([]byte("tail")).Build()
	hdr, _, err := Locate(img)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if hdr.NumSlots != 3 {
		t.Fatalf("NumSlots = %d", hdr.NumSlots)
	}
	if string(img[len(img)-4:]) != "tail" {
		t.Fatalf("trailing bytes missing")
	}
	nameRel, _ := buf.U32At(img, HeaderSize)
	if nameRel != 0xFFFFFF00 {
		t.Fatalf("raw name offset = 0x%X", nameRel)
	}
}
