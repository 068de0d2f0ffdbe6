package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/rpupo63/devtracker-backend/models"
	"github.com/rpupo63/devtracker-backend/payload"
	"github.com/rpupo63/devtracker-backend/sqlbuild"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects ordered by id
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.WithContext(ctx).Raw(`SELECT * FROM "projects" ORDER BY "id"`).Scan(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	stmt, err := sqlbuild.SelectBy(projectsTable, "id", id)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := queryRow(r.db.WithContext(ctx), stmt, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Create inserts a new project from validated fields
func (r *ProjectRepo) Create(ctx context.Context, fields payload.Fields) (*models.Project, error) {
	stmt, err := sqlbuild.Insert(projectsTable, fields)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := queryRow(r.db.WithContext(ctx), stmt, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Update applies validated fields to an existing project
func (r *ProjectRepo) Update(ctx context.Context, id int64, fields payload.Fields) (*models.Project, error) {
	stmt, err := sqlbuild.Update(projectsTable, fields, id)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := queryRow(r.db.WithContext(ctx), stmt, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	stmt, err := sqlbuild.Delete(projectsTable, id)
	if err != nil {
		return err
	}
	return execAffecting(r.db.WithContext(ctx), stmt)
}

func (r *ProjectRepo) Exists(ctx context.Context, id int64) (bool, error) {
	stmt, err := sqlbuild.Exists(projectsTable, "id", id)
	if err != nil {
		return false, err
	}
	return exists(r.db.WithContext(ctx), stmt)
}
