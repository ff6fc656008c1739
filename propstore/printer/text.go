package printer

import (
	"fmt"

	"github.com/joshuapare/propkit/propstore"
)

// printText prints "key = value" with the separators aligned.
func (p *Printer) printText(entries []propstore.Entry) error {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Key))
	}
	for _, e := range entries {
		var err error
		if p.opts.ShowEntries {
			_, err = fmt.Fprintf(p.writer, "%-*s = %s  (offset 0x%X, size %d)\n", width, e.Key, DisplayValue(e.Value), e.Offset, e.Size)
		} else {
			_, err = fmt.Fprintf(p.writer, "%-*s = %s\n", width, e.Key, DisplayValue(e.Value))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
