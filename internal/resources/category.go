package resources

import (
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
	"github.com/gosimple/slug"
)

// Category is a taxonomy entry. The slug is server-derived from the name on
// every write that touches it.
type Category struct {
	resource.Base
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Slug        string `gorm:"size:255;index" json:"slug"`
}

func (Category) TableName() string { return "categories" }

func Categories() Definition {
	return Definition{
		Model: &Category{},
		Descriptor: resource.Descriptor{
			Name:  "category",
			Path:  "categories",
			Table: "categories",
			Fields: []resource.Field{
				{Name: "name", Kind: resource.String, Required: true},
				{Name: "description", Kind: resource.String},
			},
			SearchFields: []string{"name", "description", "slug"},
			DefaultSort:  query.Sort{Field: "created_at", Desc: true},
			BeforeWrite: func(patch map[string]any) {
				if name, ok := patch["name"].(string); ok {
					patch["slug"] = slug.Make(name)
				}
			},
		},
	}
}
