package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devtracker-backend/models"
	"github.com/rpupo63/devtracker-backend/payload"
)

type developerInfoHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     developerInfoStore
}

func newDeveloperInfoHandler(store developerInfoStore) developerInfoHandler {
	logger := log.With().Str("handlerName", "developerInfoHandler").Logger()

	return developerInfoHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// checkInfo validates the value rules shared by create and update. The OS
// check runs here so an unknown value never reaches an insert.
func checkInfo(fields payload.Fields) error {
	if err := payload.CheckDates(fields, "developerSince"); err != nil {
		return err
	}
	return payload.CheckOneOf(fields, "preferredOS", models.PreferredOSValues)
}

// createDeveloperInfo attaches info to a developer that has none
// @Summary Create developer info
// @Tags Developers
// @Accept json
// @Produce json
// @Param id path int true "Developer ID"
// @Success 201 {object} models.DeveloperInfo
// @Failure 400 {object} ErrorResponse "Missing keys, bad date or unknown OS"
// @Failure 404 {object} ErrorResponse "Developer not found"
// @Failure 409 {object} ErrorResponse "Developer info already exists"
// @Router /developers/{id}/infos [post]
func (h developerInfoHandler) createDeveloperInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		developerID, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		body, err := decodeBody(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		fields, err := payload.Validate(body, models.DeveloperInfoFields, payload.All)
		if err == nil {
			err = checkInfo(fields)
		}
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("create", "developer info", err))
			return
		}

		info, err := h.store.Create(r.Context(), developerID, fields)
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("create", "developer info", err))
			return
		}

		h.logger.Info().Int64("developerId", developerID).Int64("developerInfoId", info.ID).Msg("developer info created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, info)
	}
}

// updateDeveloperInfo patches the info row linked to the developer
// @Summary Update developer info
// @Tags Developers
// @Accept json
// @Produce json
// @Param id path int true "Developer ID"
// @Success 200 {object} models.DeveloperInfo
// @Failure 400 {object} ErrorResponse "No updatable keys, bad date or unknown OS"
// @Failure 404 {object} ErrorResponse "Developer or developer info not found"
// @Router /developers/{id}/infos [patch]
func (h developerInfoHandler) updateDeveloperInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		developerID, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		body, err := decodeBody(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		fields, err := payload.Validate(body, models.DeveloperInfoFields, payload.Any)
		if err == nil {
			err = checkInfo(fields)
		}
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("update", "developer info", err))
			return
		}

		info, err := h.store.UpdateForDeveloper(r.Context(), developerID, fields)
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("update", "developer info", err))
			return
		}

		h.responder.WriteJSON(w, info)
	}
}
