package tiny

import (
	"fmt"
	"io"
	"log/slog"

	"remap.dev/pkg/remap/internal/domain/descriptor"
	"remap.dev/pkg/remap/internal/domain/lookup"
	m "remap.dev/pkg/remap/internal/model"
)

// Read parses a tiny v1 stream into a single-hop table.
//
// With reversed set the table maps from the second namespace to the first.
// Member records encode owner and descriptor in the first namespace, so they
// are buffered until every class is known and then rewritten through the
// forward class table before their names are swapped.
func Read(r io.Reader, reversed bool) (*lookup.Table, error) {
	sc := newScanner(r)

	var (
		header  *headerRecord
		entries []m.MappingEntry
		pending []memberRecord
	)

	forward := make(map[string]string)

	for sc.Scan() {
		switch rec := sc.Record().(type) {
		case commentRecord:
			continue
		case malformedRecord:
			return nil, m.NewLineError(rec.line(), rec.text, rec.err)
		case headerRecord:
			header = &rec
		case classRecord:
			if !reversed {
				entries = append(entries, m.ClassMapping(rec.src, rec.dst))
				continue
			}

			forward[rec.src] = rec.dst
			entries = append(entries, m.ClassMapping(rec.dst, rec.src))
		case memberRecord:
			if !reversed {
				entries = append(entries, memberEntry(rec.kind, rec.owner, rec.src, rec.desc, rec.dst))
				continue
			}

			pending = append(pending, rec)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tiny mappings: %w", err)
	}

	if header == nil {
		return nil, fmt.Errorf("%w: missing header", m.ErrFormat)
	}

	from, to := header.from, header.to

	if reversed {
		from, to = to, from
		classes := descriptor.ClassRemapperFunc(func(name string) string {
			if dst, ok := forward[name]; ok {
				return dst
			}

			return name
		})

		for _, rec := range pending {
			desc := descriptor.RewriteField(rec.desc, classes)
			if rec.kind == m.KindMethod {
				desc = descriptor.RewriteMethod(rec.desc, classes)
			}

			entries = append(entries, memberEntry(rec.kind, classes(rec.owner), rec.dst, desc, rec.src))
		}
	}

	slog.Debug("read tiny mappings", "from", from, "to", to, "entries", len(entries), "reversed", reversed)

	return lookup.NewTable(from, to, entries), nil
}

func memberEntry(kind m.EntryKind, owner, name, desc, dst string) m.MappingEntry {
	if kind == m.KindMethod {
		return m.MethodMapping(owner, name, desc, dst)
	}

	return m.FieldMapping(owner, name, desc, dst)
}
