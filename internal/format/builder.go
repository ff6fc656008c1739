package format

import "github.com/joshuapare/propkit/internal/buf"

// Builder synthesizes property-area images. It exists for tests and for the
// CLI's fixture generator; production code only ever reads images.
//
// The produced layout is:
//
//	[Lead bytes] [header] [TOCGap bytes] [TOC] [strings...]
//
// with the TOC offset stored relative to the end of the header.
type Builder struct {
	// Lead is the number of filler bytes written before the signature.
	Lead int
	// Version is written to the header's version field.
	Version uint32
	// TOCGap is the number of zero bytes between the header and the TOC.
	TOCGap uint32

	slots    *uint32
	entries  []builderEntry
	trailing []byte
}

type builderEntry struct {
	key, value string
	raw        bool
	name, val  uint32
	size       uint32
}

// NewBuilder returns a Builder with no lead bytes and version 1.
func NewBuilder() *Builder {
	return &Builder{Version: 1}
}

// Add appends a property whose strings are stored in the image.
func (b *Builder) Add(key, value string) *Builder {
	b.entries = append(b.entries, builderEntry{key: key, value: value})
	return b
}

// AddRaw appends a TOC entry with explicit (possibly bogus) offsets relative
// to the data region. No strings are stored for it.
func (b *Builder) AddRaw(nameOff, valueOff, size uint32) *Builder {
	b.entries = append(b.entries, builderEntry{raw: true, name: nameOff, val: valueOff, size: size})
	return b
}

// ForceSlots overrides the slot count written to the header.
func (b *Builder) ForceSlots(n uint32) *Builder {
	b.slots = &n
	return b
}

// Trailing appends arbitrary bytes after the string pool.
func (b *Builder) Trailing(p []byte) *Builder {
	b.trailing = append(b.trailing, p...)
	return b
}

// Build renders the image.
func (b *Builder) Build() []byte {
	dataStart := b.Lead + HeaderSize
	tocRel := int(b.TOCGap)
	poolRel := tocRel + len(b.entries)*TOCEntrySize

	var pool []byte
	type placed struct{ name, val, size uint32 }
	offs := make([]placed, len(b.entries))
	for i, e := range b.entries {
		if e.raw {
			offs[i] = placed{e.name, e.val, e.size}
			continue
		}
		nameRel := uint32(poolRel + len(pool))
		pool = append(pool, e.key...)
		pool = append(pool, 0)
		valRel := uint32(poolRel + len(pool))
		pool = append(pool, e.value...)
		pool = append(pool, 0)
		offs[i] = placed{nameRel, valRel, uint32(len(e.value))}
	}

	out := make([]byte, dataStart+poolRel+len(pool), dataStart+poolRel+len(pool)+len(b.trailing))
	for i := 0; i < b.Lead; i++ {
		out[i] = 0xA5
	}

	slots := uint32(len(b.entries))
	if b.slots != nil {
		slots = *b.slots
	}
	h := b.Lead
	copy(out[h:], Signature)
	buf.PutU32(out, h+VersionOffset, b.Version)
	buf.PutU32(out, h+NumSlotsOffset, slots)
	buf.PutU32(out, h+TOCOffsetOffset, b.TOCGap)
	buf.PutU32(out, h+DataSizeOffset, uint32(poolRel+len(pool)))

	for i, p := range offs {
		at := dataStart + tocRel + i*TOCEntrySize
		buf.PutU32(out, at+EntryNameOffset, p.name)
		buf.PutU32(out, at+EntryValueOffset, p.val)
		buf.PutU32(out, at+EntrySizeOffset, p.size)
	}
	copy(out[dataStart+poolRel:], pool)
	return append(out, b.trailing...)
}
