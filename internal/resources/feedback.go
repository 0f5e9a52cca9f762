package resources

import (
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
)

// Feedback is a customer feedback form submission.
type Feedback struct {
	resource.Base
	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Message string `gorm:"type:text;not null" json:"message"`
	Rating  *int64 `json:"rating"`
}

func (Feedback) TableName() string { return "feedback" }

func Feedbacks() Definition {
	return Definition{
		Model: &Feedback{},
		Descriptor: resource.Descriptor{
			Name:  "feedback",
			Path:  "feedback",
			Table: "feedback",
			Fields: []resource.Field{
				{Name: "name", Kind: resource.String, Required: true},
				{Name: "email", Kind: resource.String, Required: true},
				{Name: "message", Kind: resource.String, Required: true},
				{Name: "rating", Kind: resource.Int},
			},
			SearchFields: []string{"name", "email", "message"},
			DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		},
	}
}
