package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rpupo63/devtracker-backend/models"
	"github.com/rpupo63/devtracker-backend/payload"
	"github.com/rpupo63/devtracker-backend/sqlbuild"
)

type TechnologyRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTechnologyRepo(db *gorm.DB) *TechnologyRepo {
	return &TechnologyRepo{db: db, now: time.Now}
}

// FindAll lists the supported technologies by name.
func (r *TechnologyRepo) FindAll(ctx context.Context) ([]models.Technology, error) {
	technologies := []models.Technology{}
	err := r.db.WithContext(ctx).Raw(`SELECT * FROM "technologies" ORDER BY "name"`).Scan(&technologies).Error
	return technologies, err
}

// FindByName returns gorm.ErrRecordNotFound for unsupported names.
func (r *TechnologyRepo) FindByName(ctx context.Context, name string) (*models.Technology, error) {
	stmt, err := sqlbuild.SelectBy(technologiesTable, "name", name)
	if err != nil {
		return nil, err
	}

	var technology models.Technology
	if err := queryRow(r.db.WithContext(ctx), stmt, &technology); err != nil {
		return nil, err
	}
	return &technology, nil
}

// Link records that a project uses a technology as of today.
func (r *TechnologyRepo) Link(ctx context.Context, projectID, technologyID int64) (*models.ProjectTechnology, error) {
	stmt, err := sqlbuild.Insert(projectsTechnologiesTable, payload.Fields{
		{Name: "addedIn", Value: models.NewDate(r.now()).String()},
		{Name: "projectId", Value: projectID},
		{Name: "technologyId", Value: technologyID},
	})
	if err != nil {
		return nil, err
	}

	var link models.ProjectTechnology
	if err := queryRow(r.db.WithContext(ctx), stmt, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// Unlink removes the project/technology pair. A missing pair is
// gorm.ErrRecordNotFound.
func (r *TechnologyRepo) Unlink(ctx context.Context, projectID, technologyID int64) error {
	stmt := sqlbuild.Statement{
		SQL:  `DELETE FROM "projects_technologies" WHERE "projectId" = ? AND "technologyId" = ?`,
		Args: []any{projectID, technologyID},
	}
	return execAffecting(r.db.WithContext(ctx), stmt)
}
