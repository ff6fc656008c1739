package propstore

import (
	"github.com/sirupsen/logrus"

	"github.com/joshuapare/propkit/internal/buf"
	"github.com/joshuapare/propkit/internal/format"
)

// parseTable walks the TOC described by a validated header at headerOff.
//
// Offsets in the TOC, and the TOC offset in the header, are relative to the
// data region that starts right after the header. relativeTOC keeps the
// header's value; resolvedTOC is the absolute position. All sums are done
// in int so a huge u32 offset cannot wrap onto a small valid one.
func (p *Parser) parseTable(raw []byte, hdr format.Header, headerOff int) *collector {
	c := newCollector()
	dataStart := format.DataStart(headerOff)
	relativeTOC := hdr.TOCOffset

	resolvedTOC, ok := buf.Resolve(dataStart, relativeTOC)
	if !ok {
		p.diags.record(StrategyStructured, ErrKindBounds, dataStart, "toc offset 0x%X overflows", relativeTOC)
		return c
	}
	p.log.WithFields(logrus.Fields{
		"data_start":   dataStart,
		"relative_toc": relativeTOC,
		"resolved_toc": resolvedTOC,
		"num_slots":    hdr.NumSlots,
	}).Debug("structured parse")

	if _, err := buf.CheckTableBounds(len(raw), resolvedTOC, int(hdr.NumSlots), format.TOCEntrySize); err != nil {
		p.diags.record(StrategyStructured, ErrKindBounds, resolvedTOC, "declared table does not fit: %v", err)
		p.log.WithError(err).Debug("declared table overruns buffer")
		return c
	}

	limit := min(int(hdr.NumSlots), format.MaxTableSlots)
	if int(hdr.NumSlots) > limit {
		p.diags.record(StrategyStructured, ErrKindBounds, resolvedTOC, "num_slots=%d capped at %d", hdr.NumSlots, limit)
	}

	for i := range limit {
		at := resolvedTOC + i*format.TOCEntrySize
		rec, ok := buf.Slice(raw, at, format.TOCEntrySize)
		if !ok {
			p.diags.record(StrategyStructured, ErrKindBounds, at, "slot %d entry overruns buffer", i)
			break
		}
		nameRel := buf.U32LE(rec[format.EntryNameOffset:])
		valueRel := buf.U32LE(rec[format.EntryValueOffset:])
		size := buf.U32LE(rec[format.EntrySizeOffset:])

		// Resolve cannot fail here: dataStart is small and the operands are u32.
		nameAbs, _ := buf.Resolve(dataStart, nameRel)
		valueAbs, _ := buf.Resolve(dataStart, valueRel)
		if nameAbs >= len(raw) {
			p.diags.record(StrategyStructured, ErrKindBounds, at, "slot %d name offset 0x%X outside buffer", i, nameRel)
			continue
		}
		if valueAbs >= len(raw) {
			p.diags.record(StrategyStructured, ErrKindBounds, at, "slot %d value offset 0x%X outside buffer", i, valueRel)
			continue
		}

		key := string(buf.CString(raw, nameAbs))
		if !c.put(Entry{
			Key:    key,
			Value:  string(buf.CString(raw, valueAbs)),
			Offset: nameAbs,
			Size:   size,
		}) {
			continue
		}
		if c.found <= 10 {
			p.log.WithField("slot", i).Debugf("property %s = %s", key, c.entries[key].Value)
		}
	}
	return c
}
