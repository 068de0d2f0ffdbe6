package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rpupo63/devtracker-backend/errs"
	"github.com/rpupo63/devtracker-backend/models"
	"github.com/rpupo63/devtracker-backend/payload"
)

type technologyHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     technologyStore
}

func newTechnologyHandler(store technologyStore) technologyHandler {
	logger := log.With().Str("handlerName", "technologyHandler").Logger()

	return technologyHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

func (h technologyHandler) getAllTechnologies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		technologies, err := h.store.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("find", "technologies", err))
			return
		}
		if technologies == nil {
			technologies = []models.Technology{}
		}

		h.responder.WriteJSON(w, technologies)
	}
}

// addProjectTechnology links a supported technology to a project
// @Summary Add technology to project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.ProjectTechnology
// @Failure 400 {object} ErrorResponse "Missing name or technology not supported"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 409 {object} ErrorResponse "Technology already added"
// @Router /projects/{id}/technologies [post]
func (h technologyHandler) addProjectTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		body, err := decodeBody(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		fields, err := payload.Validate(body, models.TechnologyFields, payload.All)
		if err == nil {
			err = payload.CheckStrings(fields, models.TechnologyFields...)
		}
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("add", "project technology", err))
			return
		}

		name, _ := fields.Get("name")
		technology, err := h.store.FindByName(r.Context(), strings.TrimSpace(name.(string)))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			unsupported := errs.NewBadRequestError("Technology not supported.")
			unsupported.Field = "name"
			h.responder.WriteError(w, r, unsupported)
			return
		}
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("find", "technology", err))
			return
		}

		link, err := h.store.Link(r.Context(), projectID, technology.ID)
		if err != nil {
			err = wrapDatabaseError("add", "project technology", err)
			if errs.IsAlreadyExists(err) {
				err = errs.NewConflictError("Technology already added to project.")
			}
			h.responder.WriteError(w, r, err)
			return
		}

		h.logger.Info().Int64("projectId", projectID).Str("technology", technology.Name).Msg("technology linked")
		h.responder.WriteJSON(w, link)
	}
}

// removeProjectTechnology unlinks a technology from a project
// @Summary Remove technology from project
// @Tags Projects
// @Param id path int true "Project ID"
// @Param name path string true "Technology name"
// @Success 204
// @Failure 404 {object} ErrorResponse "Project, technology or link not found"
// @Router /projects/{id}/technologies/{name} [delete]
func (h technologyHandler) removeProjectTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		technology, err := h.store.FindByName(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("find", "technology", err))
			return
		}

		if err := h.store.Unlink(r.Context(), projectID, technology.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, r, errs.NewNotFoundError("Technology not found in project."))
				return
			}
			h.responder.WriteError(w, r, wrapDatabaseError("remove", "project technology", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
