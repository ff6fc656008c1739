package propstore

import (
	"github.com/joshuapare/propkit/internal/buf"
	"github.com/joshuapare/propkit/internal/format"
)

// scanGeneric walks up to MaxGenericPairs (name, value) offset pairs starting
// at start, reading both strings at absolute positions. It relies on no
// header geometry and may pick up garbage; the "ro." filter bounds that.
func (p *Parser) scanGeneric(raw []byte, start int) *collector {
	c := newCollector()
	if start < 0 || start >= len(raw) {
		p.diags.record(StrategyGenericScan, ErrKindBounds, start, "start offset outside buffer (len=%d)", len(raw))
		return c
	}

	off := start
	for range format.MaxGenericPairs {
		pair, ok := buf.Slice(raw, off, format.GenericPairSize)
		if !ok {
			break
		}
		nameAbs := int(buf.U32LE(pair[0:]))
		valueAbs := int(buf.U32LE(pair[4:]))
		at := off
		off += format.GenericPairSize

		key := string(buf.CString(raw, nameAbs))
		value := buf.CString(raw, valueAbs)
		if !c.put(Entry{Key: key, Value: string(value), Offset: nameAbs, Size: uint32(len(value))}) {
			continue
		}
		if c.found <= 10 {
			p.log.WithField("pair_offset", at).Debugf("property %s = %s", key, value)
		}
	}
	return c
}
