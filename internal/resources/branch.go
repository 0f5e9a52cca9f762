package resources

import (
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
)

// Branch is a physical business location. Other resources reference it by
// its sequence id.
type Branch struct {
	resource.Base
	Name    string `gorm:"size:255;not null" json:"name"`
	Address string `gorm:"size:512" json:"address"`
	City    string `gorm:"size:128" json:"city"`
	Phone   string `gorm:"size:32" json:"phone"`
}

func (Branch) TableName() string { return "branches" }

// BranchProjection is the whitelisted view spliced into records that
// reference a branch.
var BranchProjection = []string{"name", "address", "city", "status"}

func Branches() Definition {
	return Definition{
		Model: &Branch{},
		Descriptor: resource.Descriptor{
			Name:  "branch",
			Path:  "branches",
			Table: "branches",
			Fields: []resource.Field{
				{Name: "name", Kind: resource.String, Required: true},
				{Name: "address", Kind: resource.String},
				{Name: "city", Kind: resource.String},
				{Name: "phone", Kind: resource.String},
			},
			SearchFields: []string{"name", "address", "city"},
			DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		},
	}
}
