package resources

import (
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
)

// ContentCreator is a social-media creator profile referenced by reel and
// room join records.
type ContentCreator struct {
	resource.Base
	Name     string `gorm:"size:255;not null" json:"name"`
	Handle   string `gorm:"size:128;not null" json:"handle"`
	Platform string `gorm:"size:64" json:"platform"`
	Bio      string `gorm:"type:text" json:"bio"`
}

func (ContentCreator) TableName() string { return "content_creators" }

// CreatorProjection is the whitelisted view spliced into records that
// reference a creator.
var CreatorProjection = []string{"name", "handle", "platform", "status"}

func ContentCreators() Definition {
	return Definition{
		Model: &ContentCreator{},
		Descriptor: resource.Descriptor{
			Name:  "content_creator",
			Path:  "content-creators",
			Table: "content_creators",
			Fields: []resource.Field{
				{Name: "name", Kind: resource.String, Required: true},
				{Name: "handle", Kind: resource.String, Required: true},
				{Name: "platform", Kind: resource.String},
				{Name: "bio", Kind: resource.String},
			},
			SearchFields: []string{"name", "handle", "bio"},
			DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		},
	}
}
