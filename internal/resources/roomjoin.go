package resources

import (
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
)

// RoomJoin is a social-media room membership record for a creator.
type RoomJoin struct {
	resource.Base
	RoomName    string `gorm:"size:255;not null" json:"room_name"`
	Platform    string `gorm:"size:64" json:"platform"`
	MemberCount *int64 `json:"member_count"`
	CreatorID   *int64 `gorm:"index" json:"creator_id"`
}

func (RoomJoin) TableName() string { return "room_joins" }

func RoomJoins() Definition {
	return Definition{
		Model: &RoomJoin{},
		Descriptor: resource.Descriptor{
			Name:  "room_join",
			Path:  "room-joins",
			Table: "room_joins",
			Fields: []resource.Field{
				{Name: "room_name", Kind: resource.String, Required: true},
				{Name: "platform", Kind: resource.String},
				{Name: "member_count", Kind: resource.Int},
				{Name: "creator_id", Kind: resource.Int},
			},
			SearchFields: []string{"room_name", "platform"},
			Scopes:       map[string]string{"creator_id": "creator_id"},
			References: []query.Reference{
				{Column: "creator_id", Table: "content_creators", Projection: CreatorProjection},
			},
			DefaultSort: query.Sort{Field: "created_at", Desc: true},
		},
	}
}
