package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/propkit/propstore"
)

// printProp prints build.prop lines. Newlines inside values would break the
// format, so they are escaped.
func (p *Printer) printProp(entries []propstore.Entry) error {
	for _, e := range entries {
		v := strings.NewReplacer("\\", "\\\\", "\n", "\\n").Replace(DisplayValue(e.Value))
		if _, err := fmt.Fprintf(p.writer, "%s=%s\n", e.Key, v); err != nil {
			return err
		}
	}
	return nil
}
