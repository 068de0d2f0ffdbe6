package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devtracker-backend/errs"
	"github.com/rpupo63/devtracker-backend/payload"
)

type developerLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	HasInfo(ctx context.Context, id int64) (bool, error)
}

type projectLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// guards are route middlewares that run one read each and stop the request
// with 404 or 409 before the handler mutates anything.
type guards struct {
	responder  Responder
	developers developerLookup
	projects   projectLookup
}

func newGuards(developers developerLookup, projects projectLookup) guards {
	logger := log.With().Str("handlerName", "guards").Logger()
	return guards{
		responder:  NewResponder(logger),
		developers: developers,
		projects:   projects,
	}
}

// check runs lookup and answers with failure when it reports false.
func (g guards) check(w http.ResponseWriter, r *http.Request, entity string, failure *errs.ApiErr, lookup func() (bool, error)) bool {
	ok, err := lookup()
	if err != nil {
		g.responder.WriteError(w, r, errs.FromDatabase("check", entity, err))
		return false
	}
	if !ok {
		g.responder.WriteError(w, r, failure)
		return false
	}
	return true
}

func (g guards) ensureDeveloperExists(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			g.responder.WriteError(w, r, err)
			return
		}

		if g.check(w, r, "developer", errs.NewNotFound("developer"), func() (bool, error) {
			return g.developers.Exists(r.Context(), id)
		}) {
			next.ServeHTTP(w, r)
		}
	})
}

func (g guards) ensureProjectExists(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			g.responder.WriteError(w, r, err)
			return
		}

		if g.check(w, r, "project", errs.NewNotFound("project"), func() (bool, error) {
			return g.projects.Exists(r.Context(), id)
		}) {
			next.ServeHTTP(w, r)
		}
	})
}

// ensureInfoAbsent stops a second info row for the developer in the path.
func (g guards) ensureInfoAbsent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			g.responder.WriteError(w, r, err)
			return
		}

		if g.check(w, r, "developer info", errs.NewAlreadyExists("developer info"), func() (bool, error) {
			hasInfo, err := g.developers.HasInfo(r.Context(), id)
			return !hasInfo, err
		}) {
			next.ServeHTTP(w, r)
		}
	})
}

// ensureBodyDeveloperExists checks body.developerId when the body carries it.
func (g guards) ensureBodyDeveloperExists(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok, err := peekBody(r)
		if err != nil {
			g.responder.WriteError(w, r, err)
			return
		}

		value, present := body["developerId"]
		if !ok || !present || value == nil {
			next.ServeHTTP(w, r)
			return
		}

		id, err := payload.AsID(value)
		if err != nil {
			g.responder.WriteError(w, r, errs.NewInvalidFieldError("developerId", "must be a positive integer"))
			return
		}

		if g.check(w, r, "developer", errs.NewNotFound("developer"), func() (bool, error) {
			return g.developers.Exists(r.Context(), id)
		}) {
			next.ServeHTTP(w, r)
		}
	})
}

// ensureEmailAvailable checks body.email against existing developers.
func (g guards) ensureEmailAvailable(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok, err := peekBody(r)
		if err != nil {
			g.responder.WriteError(w, r, err)
			return
		}

		email, isString := body["email"].(string)
		if !ok || !isString || strings.TrimSpace(email) == "" {
			next.ServeHTTP(w, r)
			return
		}

		failure := errs.NewAlreadyExists("email")
		failure.Field = "email"
		if g.check(w, r, "developer", failure, func() (bool, error) {
			taken, err := g.developers.EmailTaken(r.Context(), email)
			return !taken, err
		}) {
			next.ServeHTTP(w, r)
		}
	})
}
