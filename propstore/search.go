package propstore

import (
	"bytes"

	"github.com/joshuapare/propkit/internal/buf"
	"github.com/joshuapare/propkit/internal/format"
)

// TargetKeys are the device-identity keys the targeted search looks for.
var TargetKeys = []string{
	KeyProductBrand,
	KeyProductModel,
	KeyProductManufacturer,
	KeyProductName,
	KeyProductDevice,
	KeyHardware,
	KeyVersionRelease,
	KeyVersionSDK,
	KeyVersionIncremental,
}

// searchTargets looks for each target key written as "key=value". Only the
// first occurrence of a key is examined: when it is not followed by '=' the
// key is given up on rather than searched again. The value is the printable
// ASCII run after '=', capped at MaxSearchValueLen bytes; empty values are
// not recorded.
func (p *Parser) searchTargets(raw []byte) *collector {
	c := newCollector()
	for _, key := range TargetKeys {
		at := bytes.Index(raw, []byte(key))
		if at < 0 {
			continue
		}
		sep := at + len(key)
		if sep >= len(raw) || raw[sep] != format.KeyValueSeparator {
			p.diags.record(StrategyTargetedSearch, ErrKindFormat, at, "%s not followed by '='", key)
			continue
		}
		value := buf.PrintableRun(raw, sep+1, format.MaxSearchValueLen)
		if len(value) == 0 {
			continue
		}
		c.put(Entry{Key: key, Value: string(value), Offset: at, Size: uint32(len(value))})
		p.log.Debugf("property %s = %s", key, value)
	}
	return c
}
