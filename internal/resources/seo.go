package resources

import (
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
)

// SEORecord is per-page SEO metadata.
type SEORecord struct {
	resource.Base
	PageName        string `gorm:"size:255;not null" json:"page_name"`
	MetaTitle       string `gorm:"size:255;not null" json:"meta_title"`
	MetaDescription string `gorm:"type:text" json:"meta_description"`
	Keywords        string `gorm:"type:text" json:"keywords"`
}

func (SEORecord) TableName() string { return "seo_records" }

func SEORecords() Definition {
	return Definition{
		Model: &SEORecord{},
		Descriptor: resource.Descriptor{
			Name:  "seo_record",
			Path:  "seo",
			Table: "seo_records",
			Fields: []resource.Field{
				{Name: "page_name", Kind: resource.String, Required: true},
				{Name: "meta_title", Kind: resource.String, Required: true},
				{Name: "meta_description", Kind: resource.String},
				{Name: "keywords", Kind: resource.String},
			},
			SearchFields: []string{"page_name", "meta_title", "keywords"},
			DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		},
	}
}
