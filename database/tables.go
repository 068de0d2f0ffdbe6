package database

import "github.com/rpupo63/devtracker-backend/sqlbuild"

// Column allow-lists for every table the statement builder may touch.
var (
	developersTable = sqlbuild.Table{
		Name:    "developers",
		Columns: []string{"id", "name", "email", "developerInfoId"},
	}
	developersInfoTable = sqlbuild.Table{
		Name:    "developers_info",
		Columns: []string{"id", "developerSince", "preferredOS"},
	}
	projectsTable = sqlbuild.Table{
		Name:    "projects",
		Columns: []string{"id", "name", "description", "estimatedTime", "repository", "startDate", "endDate", "developerId"},
	}
	technologiesTable = sqlbuild.Table{
		Name:    "technologies",
		Columns: []string{"id", "name"},
	}
	projectsTechnologiesTable = sqlbuild.Table{
		Name:    "projects_technologies",
		Columns: []string{"id", "addedIn", "projectId", "technologyId"},
	}
)
