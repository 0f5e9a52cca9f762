package resource

import "time"

// Base carries the columns shared by every resource table: the 24-hex
// storage key, the per-resource public sequence id, the soft-delete flag,
// and the audit fields. The updated_* pair is stamped on every update path
// including soft delete; the sequence id is assigned once and never changes.
type Base struct {
	ID        string    `gorm:"primaryKey;size:24" json:"id"`
	SeqNo     int64     `gorm:"uniqueIndex;not null" json:"seq_no"`
	Status    bool      `gorm:"not null;default:true" json:"status"`
	CreatedBy *int64    `json:"created_by"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedBy *int64    `json:"updated_by"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BaseRow builds the shared columns for a freshly created record. The
// updated_by column stays NULL until the first update.
func BaseRow(key string, seqNo int64, userID *int64, now time.Time) map[string]any {
	row := map[string]any{
		"id":         key,
		"seq_no":     seqNo,
		"status":     true,
		"created_at": now,
		"updated_at": now,
	}
	if userID != nil {
		row["created_by"] = *userID
	}
	return row
}
