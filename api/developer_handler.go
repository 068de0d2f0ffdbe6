package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devtracker-backend/models"
	"github.com/rpupo63/devtracker-backend/payload"
)

type developerHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     developerStore
}

func newDeveloperHandler(store developerStore) developerHandler {
	logger := log.With().Str("handlerName", "developerHandler").Logger()

	return developerHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// createDeveloper creates a new developer
// @Summary Create developer
// @Tags Developers
// @Accept json
// @Produce json
// @Success 201 {object} models.Developer
// @Failure 400 {object} ErrorResponse "Missing name or email"
// @Failure 409 {object} ErrorResponse "Email already exists"
// @Router /developers [post]
func (h developerHandler) createDeveloper() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeBody(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		fields, err := payload.Validate(body, models.DeveloperFields, payload.All)
		if err == nil {
			err = payload.CheckStrings(fields, models.DeveloperFields...)
		}
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("create", "developer", err))
			return
		}

		developer, err := h.store.Create(r.Context(), fields)
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("create", "developer", err))
			return
		}

		h.logger.Info().Int64("developerId", developer.ID).Msg("developer created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, developer)
	}
}

// getAllDevelopers lists developers joined with their info
// @Summary List developers
// @Tags Developers
// @Produce json
// @Success 200 {array} models.DeveloperDetail
// @Router /developers [get]
func (h developerHandler) getAllDevelopers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		developers, err := h.store.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("find", "developers", err))
			return
		}
		if developers == nil {
			developers = []models.DeveloperDetail{}
		}

		h.responder.WriteJSON(w, developers)
	}
}

// getDeveloper returns one developer joined with its info
// @Summary Get developer
// @Tags Developers
// @Produce json
// @Param id path int true "Developer ID"
// @Success 200 {object} models.DeveloperDetail
// @Failure 404 {object} ErrorResponse "Developer not found"
// @Router /developers/{id} [get]
func (h developerHandler) getDeveloper() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		developer, err := h.store.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("find", "developer", err))
			return
		}

		h.responder.WriteJSON(w, developer)
	}
}

// updateDeveloper applies a partial update
// @Summary Update developer
// @Tags Developers
// @Accept json
// @Produce json
// @Param id path int true "Developer ID"
// @Success 200 {object} models.Developer
// @Failure 400 {object} ErrorResponse "None of name, email present"
// @Failure 404 {object} ErrorResponse "Developer not found"
// @Failure 409 {object} ErrorResponse "Email already exists"
// @Router /developers/{id} [patch]
func (h developerHandler) updateDeveloper() http.HandlerFunc {
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

		fields, err := payload.Validate(body, models.DeveloperFields, payload.Any)
		if err == nil {
			err = payload.CheckStrings(fields, models.DeveloperFields...)
		}
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("update", "developer", err))
			return
		}

		developer, err := h.store.Update(r.Context(), id, fields)
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("update", "developer", err))
			return
		}

		h.responder.WriteJSON(w, developer)
	}
}

// deleteDeveloper removes a developer with its info and projects
// @Summary Delete developer
// @Tags Developers
// @Param id path int true "Developer ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Developer not found"
// @Router /developers/{id} [delete]
func (h developerHandler) deleteDeveloper() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		if err := h.store.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("delete", "developer", err))
			return
		}

		h.logger.Info().Int64("developerId", id).Msg("developer deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}

// getDeveloperProjects returns one row per project and technology pair
// @Summary List developer projects
// @Tags Developers
// @Produce json
// @Param id path int true "Developer ID"
// @Success 200 {array} models.DeveloperProject
// @Failure 404 {object} ErrorResponse "Developer not found"
// @Router /developers/{id}/projects [get]
func (h developerHandler) getDeveloperProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		rows, err := h.store.FindProjects(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("find", "developer projects", err))
			return
		}
		if rows == nil {
			rows = []models.DeveloperProject{}
		}

		h.responder.WriteJSON(w, rows)
	}
}
