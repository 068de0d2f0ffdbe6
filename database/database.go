package database

import (
	"context"
	_ "embed"
	"fmt"

	"gorm.io/gorm"

	"github.com/rpupo63/devtracker-backend/errs"
	"github.com/rpupo63/devtracker-backend/models"
)

//go:embed schema.sql
var schema string

type Database struct {
	db                *gorm.DB
	developerRepo     *DeveloperRepo
	developerInfoRepo *DeveloperInfoRepo
	projectRepo       *ProjectRepo
	technologyRepo    *TechnologyRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	errs.RegisterEnum("OS", "preferredOS", models.PreferredOSValues)

	return Database{
		db:                db,
		developerRepo:     NewDeveloperRepo(db),
		developerInfoRepo: NewDeveloperInfoRepo(db),
		projectRepo:       NewProjectRepo(db),
		technologyRepo:    NewTechnologyRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) DeveloperRepo() *DeveloperRepo {
	return d.developerRepo
}

func (d Database) DeveloperInfoRepo() *DeveloperInfoRepo {
	return d.developerInfoRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TechnologyRepo() *TechnologyRepo {
	return d.technologyRepo
}

// ApplySchema runs the embedded, idempotent schema script.
func (d Database) ApplySchema(ctx context.Context) error {
	if err := d.db.WithContext(ctx).Exec(schema).Error; err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Ping checks that the primary answers.
func (d Database) Ping(ctx context.Context) error {
	var one int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}
