package resources

import (
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
)

// Reward is a marketing reward offered at a branch. The branch link is
// required and must point at an active branch when written.
type Reward struct {
	resource.Base
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Points      *int64 `json:"points"`
	BranchID    *int64 `gorm:"index" json:"branch_id"`
}

func (Reward) TableName() string { return "rewards" }

func Rewards() Definition {
	return Definition{
		Model: &Reward{},
		Descriptor: resource.Descriptor{
			Name:  "reward",
			Path:  "rewards",
			Table: "rewards",
			Fields: []resource.Field{
				{Name: "name", Kind: resource.String, Required: true},
				{Name: "description", Kind: resource.String},
				{Name: "points", Kind: resource.Int},
				{Name: "branch_id", Kind: resource.Int, Required: true},
			},
			SearchFields: []string{"name", "description"},
			Scopes:       map[string]string{"branch_id": "branch_id"},
			References: []query.Reference{
				{Column: "branch_id", Table: "branches", Projection: BranchProjection, Required: true},
			},
			DefaultSort: query.Sort{Field: "created_at", Desc: true},
		},
	}
}
