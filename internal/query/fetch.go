package query

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// FetchPage runs the bounded fetch and the unbounded count concurrently and
// returns both. Neither query mutates the store; there is no ordering
// dependency between them.
func FetchPage(ctx context.Context, conn *gorm.DB, table string, pred Predicate, sort Sort, limit, offset int) ([]map[string]any, int64, error) {
	var (
		rows  []map[string]any
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stmt := pred.Apply(conn.WithContext(gctx).Table(table))
		return stmt.Order(sort.OrderClause()).Limit(limit).Offset(offset).Find(&rows).Error
	})

	g.Go(func() error {
		return pred.Apply(conn.WithContext(gctx).Table(table)).Count(&total).Error
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	if rows == nil {
		rows = []map[string]any{}
	}
	return rows, total, nil
}
