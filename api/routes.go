package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers every endpoint. Guards are attached per route with
// With so they run after routing has filled in the URL params.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	g := handlers.guards

	r.Get("/healthz", handlers.healthHandler.getHealth())

	r.Route("/developers", func(r chi.Router) {
		r.With(g.ensureEmailAvailable).Post("/", handlers.developerHandler.createDeveloper())
		r.Get("/", handlers.developerHandler.getAllDevelopers())

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.developerHandler.getDeveloper())
			r.With(g.ensureDeveloperExists).Patch("/", handlers.developerHandler.updateDeveloper())
			r.With(g.ensureDeveloperExists).Delete("/", handlers.developerHandler.deleteDeveloper())

			r.With(g.ensureDeveloperExists, g.ensureInfoAbsent).Post("/infos", handlers.developerInfoHandler.createDeveloperInfo())
			r.With(g.ensureDeveloperExists).Patch("/infos", handlers.developerInfoHandler.updateDeveloperInfo())
			r.With(g.ensureDeveloperExists).Get("/projects", handlers.developerHandler.getDeveloperProjects())
		})
	})

	r.Route("/projects", func(r chi.Router) {
		r.With(g.ensureBodyDeveloperExists).Post("/", handlers.projectHandler.createProject())
		r.Get("/", handlers.projectHandler.getAllProjects())

		r.Route("/{id}", func(r chi.Router) {
			r.Use(g.ensureProjectExists)

			r.Get("/", handlers.projectHandler.getProject())
			r.With(g.ensureBodyDeveloperExists).Patch("/", handlers.projectHandler.updateProject())
			r.Delete("/", handlers.projectHandler.deleteProject())

			r.Post("/technologies", handlers.technologyHandler.addProjectTechnology())
			r.Delete("/technologies/{name}", handlers.technologyHandler.removeProjectTechnology())
		})
	})

	r.Get("/technologies", handlers.technologyHandler.getAllTechnologies())
}
