// Package resources declares every resource served by the platform: its
// gorm model (for migrations) and the descriptor driving the shared CRUD
// pipeline.
package resources

import "github.com/amani-hq/amani/internal/resource"

// Definition couples a resource's model with its pipeline descriptor.
type Definition struct {
	Model      any
	Descriptor resource.Descriptor
}

// All returns every resource definition in registration order. Branches come
// first so reference targets exist before their dependents in migrations.
func All() []Definition {
	return []Definition{
		Branches(),
		ContentCreators(),
		Feedbacks(),
		AboutApps(),
		Rewards(),
		PrinterTypes(),
		Reels(),
		RoomJoins(),
		WebsiteDashboards(),
		SEORecords(),
		SocialMediaLives(),
		Schedules(),
		Categories(),
	}
}

// Models returns the gorm models for AutoMigrate.
func Models() []any {
	defs := All()
	models := make([]any, 0, len(defs))
	for _, def := range defs {
		models = append(models, def.Model)
	}
	return models
}
