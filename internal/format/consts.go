// Package format houses the low-level layout of the Android property area
// snapshot ("PROP" image). It only knows offsets, sizes and limits; the
// strategy chain that interprets an image lives in the propstore package.
package format

// Signature is the four-byte run that anchors the header. Read as a
// little-endian u32 it equals Magic.
//
//	0x00  'P' 'R' 'O' 'P'
var Signature = []byte{'P', 'R', 'O', 'P'}

const (
	// Magic is Signature interpreted as a little-endian u32.
	Magic uint32 = 0x504F5250

	// SignatureSize is the length of Signature in bytes.
	SignatureSize = 4
)

// Header layout (24 bytes, little-endian):
//
//	Offset  Size  Field
//	------  ----  -------------------------------------------------
//	 0x00    4    magic ("PROP")
//	 0x04    4    version
//	 0x08    4    number of TOC slots
//	 0x0C    4    reserved
//	 0x10    4    TOC offset, relative to the end of the header
//	 0x14    4    data size
const (
	MagicOffset     = 0x00
	VersionOffset   = 0x04
	NumSlotsOffset  = 0x08
	ReservedOffset  = 0x0C
	TOCOffsetOffset = 0x10
	DataSizeOffset  = 0x14

	HeaderSize = 0x18
)

// TOC entry layout (12 bytes). Name and value offsets are relative to the
// data region, which starts immediately after the header.
//
//	0x00  u32  name offset
//	0x04  u32  value offset
//	0x08  u32  size
const (
	EntryNameOffset  = 0x00
	EntryValueOffset = 0x04
	EntrySizeOffset  = 0x08

	TOCEntrySize = 0x0C
)

// GenericPairSize is the stride of the header-less table scan: a bare
// (name offset, value offset) pair of absolute u32 positions.
const GenericPairSize = 8

// Work limits. None of these produce errors when exceeded; they truncate
// the amount of work done on a hostile image.
const (
	// MaxPlausibleSlots is the largest slot count a header may declare and
	// still be trusted.
	MaxPlausibleSlots = 100000

	// MaxTableSlots caps how many TOC entries the structured parser walks.
	MaxTableSlots = 10000

	// MaxGenericPairs caps how many pairs the generic scan walks.
	MaxGenericPairs = 1000

	// MaxSearchValueLen caps the value length recovered by the targeted
	// string search.
	MaxSearchValueLen = 200
)

// ReadOnlyPrefix is the namespace retained by every strategy.
const ReadOnlyPrefix = "ro."

// KeyValueSeparator must directly follow a key found by the targeted search.
const KeyValueSeparator = '='
