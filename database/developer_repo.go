package database

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/rpupo63/devtracker-backend/models"
	"github.com/rpupo63/devtracker-backend/payload"
	"github.com/rpupo63/devtracker-backend/sqlbuild"
)

const developerDetailColumns = `
	d."id"                                     AS "developerId",
	d."name"                                   AS "developerName",
	d."email"                                  AS "developerEmail",
	d."developerInfoId"                        AS "developerInfoId",
	to_char(i."developerSince", 'YYYY-MM-DD')  AS "developerInfoDeveloperSince",
	i."preferredOS"::text                      AS "developerInfoPreferredOS"`

const developerDetailFrom = `
FROM developers d
LEFT JOIN developers_info i ON i."id" = d."developerInfoId"`

const developerProjectsQuery = `SELECT` + developerDetailColumns + `,
	p."id"                                AS "projectId",
	p."name"                              AS "projectName",
	p."description"                       AS "projectDescription",
	p."estimatedTime"                     AS "projectEstimatedTime",
	p."repository"                        AS "projectRepository",
	to_char(p."startDate", 'YYYY-MM-DD')  AS "projectStartDate",
	to_char(p."endDate", 'YYYY-MM-DD')    AS "projectEndDate",
	t."id"                                AS "technologyId",
	t."name"                              AS "technologyName"` + developerDetailFrom + `
JOIN projects p ON p."developerId" = d."id"
LEFT JOIN projects_technologies pt ON pt."projectId" = p."id"
LEFT JOIN technologies t ON t."id" = pt."technologyId"
WHERE d."id" = ?
ORDER BY p."id", t."id"`

type DeveloperRepo struct {
	db *gorm.DB
}

func NewDeveloperRepo(db *gorm.DB) *DeveloperRepo {
	return &DeveloperRepo{db}
}

// FindAll returns every developer joined with its info, ordered by id.
func (r *DeveloperRepo) FindAll(ctx context.Context) ([]models.DeveloperDetail, error) {
	developers := []models.DeveloperDetail{}
	err := r.db.WithContext(ctx).
		Raw(`SELECT` + developerDetailColumns + developerDetailFrom + ` ORDER BY d."id"`).
		Scan(&developers).Error
	return developers, err
}

// FindByID returns one developer joined with its info.
func (r *DeveloperRepo) FindByID(ctx context.Context, id int64) (*models.DeveloperDetail, error) {
	var developer models.DeveloperDetail
	stmt := sqlbuild.Statement{
		SQL:  `SELECT` + developerDetailColumns + developerDetailFrom + ` WHERE d."id" = ?`,
		Args: []any{id},
	}
	if err := queryRow(r.db.WithContext(ctx), stmt, &developer); err != nil {
		return nil, err
	}
	return &developer, nil
}

// FindProjects returns one row per (project, technology) pair of the
// developer. Projects without technologies appear once with null
// technology columns.
func (r *DeveloperRepo) FindProjects(ctx context.Context, id int64) ([]models.DeveloperProject, error) {
	rows := []models.DeveloperProject{}
	err := r.db.WithContext(ctx).Raw(developerProjectsQuery, id).Scan(&rows).Error
	return rows, err
}

// Create inserts a developer from validated fields.
func (r *DeveloperRepo) Create(ctx context.Context, fields payload.Fields) (*models.Developer, error) {
	stmt, err := sqlbuild.Insert(developersTable, fields)
	if err != nil {
		return nil, err
	}

	var developer models.Developer
	if err := queryRow(r.db.WithContext(ctx), stmt, &developer); err != nil {
		return nil, err
	}
	return &developer, nil
}

// Update applies validated fields to one developer.
func (r *DeveloperRepo) Update(ctx context.Context, id int64, fields payload.Fields) (*models.Developer, error) {
	stmt, err := sqlbuild.Update(developersTable, fields, id)
	if err != nil {
		return nil, err
	}

	var developer models.Developer
	if err := queryRow(r.db.WithContext(ctx), stmt, &developer); err != nil {
		return nil, err
	}
	return &developer, nil
}

// Delete removes the developer and its info row in one transaction. Its
// projects and their technology links go with it through ON DELETE CASCADE.
func (r *DeveloperRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var infoID sql.NullInt64
		lookup := sqlbuild.Statement{
			SQL:  `SELECT "developerInfoId" FROM "developers" WHERE "id" = ? FOR UPDATE`,
			Args: []any{id},
		}
		if err := queryRow(tx, lookup, &infoID); err != nil {
			return err
		}

		stmt, err := sqlbuild.Delete(developersTable, id)
		if err != nil {
			return err
		}
		if err := execAffecting(tx, stmt); err != nil {
			return err
		}

		if !infoID.Valid {
			return nil
		}
		stmt, err = sqlbuild.Delete(developersInfoTable, infoID.Int64)
		if err != nil {
			return err
		}
		return tx.Exec(stmt.SQL, stmt.Args...).Error
	})
}

// Exists reports whether a developer with id is present.
func (r *DeveloperRepo) Exists(ctx context.Context, id int64) (bool, error) {
	stmt, err := sqlbuild.Exists(developersTable, "id", id)
	if err != nil {
		return false, err
	}
	return exists(r.db.WithContext(ctx), stmt)
}

// EmailTaken reports whether any developer already uses email.
func (r *DeveloperRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	stmt, err := sqlbuild.Exists(developersTable, "email", email)
	if err != nil {
		return false, err
	}
	return exists(r.db.WithContext(ctx), stmt)
}

// HasInfo reports whether the developer already links an info row.
func (r *DeveloperRepo) HasInfo(ctx context.Context, id int64) (bool, error) {
	stmt := sqlbuild.Statement{
		SQL:  `SELECT EXISTS (SELECT 1 FROM "developers" WHERE "id" = ? AND "developerInfoId" IS NOT NULL)`,
		Args: []any{id},
	}
	return exists(r.db.WithContext(ctx), stmt)
}
