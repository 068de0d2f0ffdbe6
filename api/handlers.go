package api

import (
	"github.com/rpupo63/devtracker-backend/database"
)

// storesFrom exposes the repositories of database through the narrow
// interfaces the handlers use.
func storesFrom(database database.Database) stores {
	return stores{
		developers:      database.DeveloperRepo(),
		developerInfos:  database.DeveloperInfoRepo(),
		projects:        database.ProjectRepo(),
		technologies:    database.TechnologyRepo(),
		developerLookup: database.DeveloperRepo(),
		projectLookup:   database.ProjectRepo(),
		health:          database,
	}
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(s stores, opts router) *routeHandlers {
	return &routeHandlers{
		developerHandler:     newDeveloperHandler(s.developers),
		developerInfoHandler: newDeveloperInfoHandler(s.developerInfos),
		projectHandler:       newProjectHandler(s.projects),
		technologyHandler:    newTechnologyHandler(s.technologies),
		healthHandler:        newHealthHandler(s.health, opts.startupTime),
		guards:               newGuards(s.developerLookup, s.projectLookup),
	}
}
