package database

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/rpupo63/devtracker-backend/errs"
	"github.com/rpupo63/devtracker-backend/models"
	"github.com/rpupo63/devtracker-backend/payload"
	"github.com/rpupo63/devtracker-backend/sqlbuild"
)

type DeveloperInfoRepo struct {
	db *gorm.DB
}

func NewDeveloperInfoRepo(db *gorm.DB) *DeveloperInfoRepo {
	return &DeveloperInfoRepo{db}
}

// Create inserts the info row and links it back onto the developer. Both
// writes share one transaction, so a failed link leaves no orphaned info.
func (r *DeveloperInfoRepo) Create(ctx context.Context, developerID int64, fields payload.Fields) (*models.DeveloperInfo, error) {
	insert, err := sqlbuild.Insert(developersInfoTable, fields)
	if err != nil {
		return nil, err
	}

	var info models.DeveloperInfo
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := queryRow(tx, insert, &info); err != nil {
			return err
		}

		link, err := sqlbuild.Update(developersTable, payload.Fields{{Name: "developerInfoId", Value: info.ID}}, developerID)
		if err != nil {
			return err
		}
		var developer models.Developer
		return queryRow(tx, link, &developer)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateForDeveloper applies fields to the info row the developer links to.
func (r *DeveloperInfoRepo) UpdateForDeveloper(ctx context.Context, developerID int64, fields payload.Fields) (*models.DeveloperInfo, error) {
	var info models.DeveloperInfo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var infoID sql.NullInt64
		lookup := sqlbuild.Statement{
			SQL:  `SELECT "developerInfoId" FROM "developers" WHERE "id" = ?`,
			Args: []any{developerID},
		}
		if err := queryRow(tx, lookup, &infoID); err != nil {
			return err
		}
		if !infoID.Valid {
			return errs.NewNotFound("developer info")
		}

		stmt, err := sqlbuild.Update(developersInfoTable, fields, infoID.Int64)
		if err != nil {
			return err
		}
		return queryRow(tx, stmt, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}
