package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devtracker-backend/errs"
	"github.com/rpupo63/devtracker-backend/models"
	"github.com/rpupo63/devtracker-backend/payload"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     projectStore
}

func newProjectHandler(store projectStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// checkProject validates value types and swaps developerId for its integer
// form.
func checkProject(fields payload.Fields) (payload.Fields, error) {
	if err := payload.CheckStrings(fields, "name", "description", "estimatedTime", "repository"); err != nil {
		return nil, err
	}
	if err := payload.CheckDates(fields, models.ProjectDateFields...); err != nil {
		return nil, err
	}
	if err := payload.CheckID(fields, "developerId"); err != nil {
		return nil, err
	}

	if value, ok := fields.Get("developerId"); ok {
		id, _ := payload.AsID(value)
		fields = fields.With("developerId", id)
	}
	return fields, nil
}

// saveError reports a developerId that vanished between the guard and the
// write as a missing developer.
func saveError(operation string, err error) error {
	err = wrapDatabaseError(operation, "project", err)
	if errs.IsForeignKeyConstraintError(err) {
		notFound := errs.NewNotFound("developer")
		notFound.Field = "developerId"
		return notFound
	}
	return err
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Failure 500 {object} ErrorResponse "Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.store.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("find", "projects", err))
			return
		}
		if projects == nil {
			projects = []models.Project{}
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Invalid id"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		project, err := h.store.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse "Invalid project data"
// @Failure 404 {object} ErrorResponse "Developer not found"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeBody(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		fields, err := payload.Validate(body, models.ProjectRequiredFields, payload.All, models.ProjectOptionalFields...)
		if err == nil {
			fields, err = checkProject(fields)
		}
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("create", "project", err))
			return
		}

		project, err := h.store.Create(r.Context(), fields)
		if err != nil {
			h.responder.WriteError(w, r, saveError("create", err))
			return
		}

		h.logger.Info().Int64("projectId", project.ID).Int64("developerId", project.DeveloperID).Msg("project created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// updateProject applies a partial update
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Invalid project data"
// @Failure 404 {object} ErrorResponse "Project or developer not found"
// @Router /projects/{id} [patch]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		body, err := decodeBody(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		fields, err := payload.Validate(body, models.ProjectRequiredFields, payload.Any, models.ProjectOptionalFields...)
		if err == nil {
			fields, err = checkProject(fields)
		}
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("update", "project", err))
			return
		}

		project, err := h.store.Update(r.Context(), id, fields)
		if err != nil {
			h.responder.WriteError(w, r, saveError("update", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project
// @Summary Delete project
// @Tags Projects
// @Param id path int true "Project ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		if err := h.store.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("delete", "project", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
