package resources

import (
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
)

// AboutApp is a help/about page entry shown in the client apps.
type AboutApp struct {
	resource.Base
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	AppVersion  string `gorm:"size:32" json:"app_version"`
}

func (AboutApp) TableName() string { return "about_app" }

func AboutApps() Definition {
	return Definition{
		Model: &AboutApp{},
		Descriptor: resource.Descriptor{
			Name:  "about_app",
			Path:  "about-app",
			Table: "about_app",
			Fields: []resource.Field{
				{Name: "title", Kind: resource.String, Required: true},
				{Name: "description", Kind: resource.String, Required: true},
				{Name: "app_version", Kind: resource.String},
			},
			SearchFields: []string{"title", "description"},
			DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		},
	}
}
