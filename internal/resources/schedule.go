package resources

import (
	"time"

	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
)

// Schedule is a workforce shift assignment, optionally tied to a branch.
type Schedule struct {
	resource.Base
	Title        string     `gorm:"size:255;not null" json:"title"`
	EmployeeName string     `gorm:"size:255;not null" json:"employee_name"`
	Note         string     `gorm:"type:text" json:"note"`
	ShiftStart   *time.Time `json:"shift_start"`
	ShiftEnd     *time.Time `json:"shift_end"`
	BranchID     *int64     `gorm:"index" json:"branch_id"`
}

func (Schedule) TableName() string { return "schedules" }

func Schedules() Definition {
	return Definition{
		Model: &Schedule{},
		Descriptor: resource.Descriptor{
			Name:  "schedule",
			Path:  "schedules",
			Table: "schedules",
			Fields: []resource.Field{
				{Name: "title", Kind: resource.String, Required: true},
				{Name: "employee_name", Kind: resource.String, Required: true},
				{Name: "note", Kind: resource.String},
				{Name: "shift_start", Kind: resource.Time},
				{Name: "shift_end", Kind: resource.Time},
				{Name: "branch_id", Kind: resource.Int},
			},
			SearchFields: []string{"title", "employee_name", "note"},
			Scopes:       map[string]string{"branch_id": "branch_id"},
			References: []query.Reference{
				{Column: "branch_id", Table: "branches", Projection: BranchProjection},
			},
			DefaultSort: query.Sort{Field: "created_at", Desc: true},
		},
	}
}
