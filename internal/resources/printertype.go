package resources

import (
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/resource"
)

// PrinterType is a lookup entry for supported receipt/kitchen printers.
type PrinterType struct {
	resource.Base
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (PrinterType) TableName() string { return "printer_types" }

func PrinterTypes() Definition {
	return Definition{
		Model: &PrinterType{},
		Descriptor: resource.Descriptor{
			Name:  "printer_type",
			Path:  "printer-types",
			Table: "printer_types",
			Fields: []resource.Field{
				{Name: "name", Kind: resource.String, Required: true},
				{Name: "description", Kind: resource.String},
			},
			SearchFields: []string{"name", "description"},
			DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		},
	}
}
