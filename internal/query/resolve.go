package query

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Reference declares a numeric cross-resource link: Column holds the
// referenced resource's sequence id, Table is its collection, and Projection
// is the whitelist of fields exposed when the link is resolved.
type Reference struct {
	Column     string
	Table      string
	Projection []string
	// Required links must point at an active record at write time.
	Required bool
}

// Resolve replaces each reference column's raw sequence id with a projected
// view of the referenced record. Lookups are batched per reference and run
// in parallel across references. Resolution is best-effort: a missing target
// (active or not) or a failed lookup leaves the raw id untouched and never
// aborts the request. Resolve is a read/response concern only — never feed
// its output back into a write.
func Resolve(ctx context.Context, conn *gorm.DB, log *zap.Logger, rows []map[string]any, refs []Reference) {
	if len(rows) == 0 || len(refs) == 0 {
		return
	}

	resolved := make([]map[int64]map[string]any, len(refs))
	g, gctx := errgroup.WithContext(ctx)

	for i, ref := range refs {
		ids := collectIDs(rows, ref.Column)
		if len(ids) == 0 {
			continue
		}
		i, ref := i, ref
		g.Go(func() error {
			columns := append([]string{"seq_no"}, ref.Projection...)
			var targets []map[string]any
			err := conn.WithContext(gctx).
				Table(ref.Table).
				Select(columns).
				Where("seq_no IN ?", ids).
				Find(&targets).Error
			if err != nil {
				log.Warn("reference resolution failed",
					zap.String("table", ref.Table),
					zap.String("column", ref.Column),
					zap.Error(err),
				)
				return nil
			}

			byID := make(map[int64]map[string]any, len(targets))
			for _, target := range targets {
				if seq, ok := AsInt64(target["seq_no"]); ok {
					byID[seq] = target
				}
			}
			resolved[i] = byID
			return nil
		})
	}

	_ = g.Wait()

	for i, ref := range refs {
		byID := resolved[i]
		if byID == nil {
			continue
		}
		for _, row := range rows {
			seq, ok := AsInt64(row[ref.Column])
			if !ok {
				continue
			}
			if target, found := byID[seq]; found {
				row[ref.Column] = target
			}
		}
	}
}

func collectIDs(rows []map[string]any, column string) []int64 {
	seen := make(map[int64]bool)
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		if seq, ok := AsInt64(row[column]); ok && !seen[seq] {
			seen[seq] = true
			ids = append(ids, seq)
		}
	}
	return ids
}

// AsInt64 normalizes the numeric types the map scan and JSON decoding
// produce for id columns.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
