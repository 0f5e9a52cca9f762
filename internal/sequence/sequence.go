// Package sequence assigns the per-resource monotonic public ids. Each
// resource table owns a named row in sequence_counters; values are assigned
// exactly once and never reused.
package sequence

import (
	"context"
	"time"

	"github.com/amani-hq/amani/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Counter stores the last value for a named monotonic counter.
type Counter struct {
	Name      string    `gorm:"primaryKey;size:64" json:"name"`
	LastValue int64     `gorm:"not null" json:"last_value"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Counter) TableName() string { return "sequence_counters" }

type Generator struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Generator {
	return &Generator{log: log.Named("sequence")}
}

// Next reserves and returns the next value for name. It runs on the given
// handle so callers can include the reservation in their own transaction;
// the UPDATE locks the counter row for the remainder of that transaction.
func (g *Generator) Next(ctx context.Context, conn *gorm.DB, name string) (int64, error) {
	var next int64
	err := conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		res := tx.Exec(
			`UPDATE sequence_counters SET last_value = last_value + 1, updated_at = ? WHERE name = ?`,
			now, name,
		)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			counter := Counter{Name: name, LastValue: 1, CreatedAt: now, UpdatedAt: now}
			err := tx.Create(&counter).Error
			if err == nil {
				next = 1
				return nil
			}
			if !db.IsDuplicateKeyErr(err) {
				return err
			}
			// Lost the creation race; bump the row the winner inserted.
			if err := tx.Exec(
				`UPDATE sequence_counters SET last_value = last_value + 1, updated_at = ? WHERE name = ?`,
				now, name,
			).Error; err != nil {
				return err
			}
		}

		return tx.Raw(`SELECT last_value FROM sequence_counters WHERE name = ?`, name).Scan(&next).Error
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}
