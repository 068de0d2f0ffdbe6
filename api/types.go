package api

import (
	"context"

	"github.com/rpupo63/devtracker-backend/models"
	"github.com/rpupo63/devtracker-backend/payload"
)

type developerStore interface {
	FindAll(ctx context.Context) ([]models.DeveloperDetail, error)
	FindByID(ctx context.Context, id int64) (*models.DeveloperDetail, error)
	FindProjects(ctx context.Context, id int64) ([]models.DeveloperProject, error)
	Create(ctx context.Context, fields payload.Fields) (*models.Developer, error)
	Update(ctx context.Context, id int64, fields payload.Fields) (*models.Developer, error)
	Delete(ctx context.Context, id int64) error
}

type developerInfoStore interface {
	Create(ctx context.Context, developerID int64, fields payload.Fields) (*models.DeveloperInfo, error)
	UpdateForDeveloper(ctx context.Context, developerID int64, fields payload.Fields) (*models.DeveloperInfo, error)
}

type projectStore interface {
	FindAll(ctx context.Context) ([]models.Project, error)
	FindByID(ctx context.Context, id int64) (*models.Project, error)
	Create(ctx context.Context, fields payload.Fields) (*models.Project, error)
	Update(ctx context.Context, id int64, fields payload.Fields) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
}

type technologyStore interface {
	FindAll(ctx context.Context) ([]models.Technology, error)
	FindByName(ctx context.Context, name string) (*models.Technology, error)
	Link(ctx context.Context, projectID, technologyID int64) (*models.ProjectTechnology, error)
	Unlink(ctx context.Context, projectID, technologyID int64) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// stores is everything the handlers and guards read from or write to.
type stores struct {
	developers      developerStore
	developerInfos  developerInfoStore
	projects        projectStore
	technologies    technologyStore
	developerLookup developerLookup
	projectLookup   projectLookup
	health          pinger
}

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	developerHandler     developerHandler
	developerInfoHandler developerInfoHandler
	projectHandler       projectHandler
	technologyHandler    technologyHandler
	healthHandler        healthHandler
	guards               guards
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error" example:"Developer not found."`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"email"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}
