package resources

import (
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
)

// Reel is a reel join record: a short-video post tracked for a creator.
// Live broadcasts also create one as a companion record.
type Reel struct {
	resource.Base
	ReelURL   string `gorm:"size:512;not null" json:"reel_url"`
	Caption   string `gorm:"type:text" json:"caption"`
	CreatorID *int64 `gorm:"index" json:"creator_id"`
}

func (Reel) TableName() string { return "reels" }

// ReelProjection is the whitelisted view spliced into records that reference
// a reel.
var ReelProjection = []string{"reel_url", "caption", "status"}

func Reels() Definition {
	return Definition{
		Model: &Reel{},
		Descriptor: resource.Descriptor{
			Name:  "reel",
			Path:  "reels",
			Table: "reels",
			Fields: []resource.Field{
				{Name: "reel_url", Kind: resource.String, Required: true},
				{Name: "caption", Kind: resource.String},
				{Name: "creator_id", Kind: resource.Int},
			},
			SearchFields: []string{"reel_url", "caption"},
			Scopes:       map[string]string{"creator_id": "creator_id"},
			References: []query.Reference{
				{Column: "creator_id", Table: "content_creators", Projection: CreatorProjection},
			},
			DefaultSort: query.Sort{Field: "created_at", Desc: true},
		},
	}
}
