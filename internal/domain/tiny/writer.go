package tiny

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"remap.dev/pkg/remap/internal/domain/lookup"
	m "remap.dev/pkg/remap/internal/model"
)

// Write serializes a table as tiny v1. Tables without namespaces are written
// with the placeholder namespaces "source" and "target".
func Write(w io.Writer, t *lookup.Table) error {
	from, to := t.Namespaces()
	if from == "" {
		from = "source"
	}

	if to == "" {
		to = "target"
	}

	bw := bufio.NewWriter(w)

	writeLine(bw, version, string(from), string(to))

	for _, e := range t.Entries() {
		switch e.Kind {
		case m.KindClass:
			writeLine(bw, e.Kind.String(), e.Name, e.Target)
		case m.KindField, m.KindMethod:
			writeLine(bw, e.Kind.String(), e.Owner, e.Desc, e.Name, e.Target)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write tiny mappings: %w", err)
	}

	return nil
}

func writeLine(bw *bufio.Writer, columns ...string) {
	_, _ = bw.WriteString(strings.Join(columns, "\t"))
	_ = bw.WriteByte('\n')
}
