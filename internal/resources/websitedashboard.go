package resources

import (
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
	"gorm.io/datatypes"
)

// WebsiteDashboard is a managed storefront/landing-page configuration.
type WebsiteDashboard struct {
	resource.Base
	Title       string            `gorm:"size:255;not null" json:"title"`
	WebsiteURL  string            `gorm:"size:512;not null" json:"website_url"`
	Description string            `gorm:"type:text" json:"description"`
	Settings    datatypes.JSONMap `gorm:"type:jsonb" json:"settings,omitempty"`
}

func (WebsiteDashboard) TableName() string { return "website_dashboards" }

func WebsiteDashboards() Definition {
	return Definition{
		Model: &WebsiteDashboard{},
		Descriptor: resource.Descriptor{
			Name:  "website_dashboard",
			Path:  "website-dashboards",
			Table: "website_dashboards",
			Fields: []resource.Field{
				{Name: "title", Kind: resource.String, Required: true},
				{Name: "website_url", Kind: resource.String, Required: true},
				{Name: "description", Kind: resource.String},
				{Name: "settings", Kind: resource.JSON},
			},
			SearchFields: []string{"title", "website_url", "description"},
			DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		},
	}
}
