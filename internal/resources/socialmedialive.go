package resources

import (
	"context"

	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
)

// SocialMediaLive is a live-broadcast record. Creating one also creates a
// companion reel and links it back; both writes share one transaction, so
// the parent never references a reel that was not persisted.
type SocialMediaLive struct {
	resource.Base
	Title     string `gorm:"size:255;not null" json:"title"`
	Platform  string `gorm:"size:64;not null" json:"platform"`
	StreamURL string `gorm:"size:512" json:"stream_url"`
	BranchID  *int64 `gorm:"index" json:"branch_id"`
	ReelID    *int64 `gorm:"index" json:"reel_id"`
}

func (SocialMediaLive) TableName() string { return "social_media_lives" }

func SocialMediaLives() Definition {
	return Definition{
		Model: &SocialMediaLive{},
		Descriptor: resource.Descriptor{
			Name:  "social_media_live",
			Path:  "social-media-lives",
			Table: "social_media_lives",
			Fields: []resource.Field{
				{Name: "title", Kind: resource.String, Required: true},
				{Name: "platform", Kind: resource.String, Required: true},
				{Name: "stream_url", Kind: resource.String},
				{Name: "branch_id", Kind: resource.Int},
			},
			SearchFields: []string{"title", "platform"},
			Scopes:       map[string]string{"branch_id": "branch_id"},
			References: []query.Reference{
				{Column: "branch_id", Table: "branches", Projection: BranchProjection},
				{Column: "reel_id", Table: "reels", Projection: ReelProjection},
			},
			DefaultSort: query.Sort{Field: "created_at", Desc: true},
			AfterCreate: createCompanionReel,
		},
	}
}

func createCompanionReel(ctx context.Context, wc resource.WriteContext, record map[string]any) error {
	seqNo, err := wc.Seq.Next(ctx, wc.Tx, "reels")
	if err != nil {
		return err
	}

	reel := resource.BaseRow(wc.Keys.NewKey(), seqNo, wc.UserID, wc.Now)
	if url, ok := record["stream_url"].(string); ok {
		reel["reel_url"] = url
	} else {
		reel["reel_url"] = ""
	}
	if title, ok := record["title"].(string); ok {
		reel["caption"] = title
	}
	if err := wc.Tx.Table("reels").Create(reel).Error; err != nil {
		return err
	}

	record["reel_id"] = seqNo
	return wc.Tx.Table("social_media_lives").
		Where("id = ?", record["id"]).
		Update("reel_id", seqNo).Error
}
