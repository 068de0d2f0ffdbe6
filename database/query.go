package database

import (
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/devtracker-backend/sqlbuild"
)

// queryRow scans the first row of stmt into dest. No row is
// gorm.ErrRecordNotFound.
func queryRow(tx *gorm.DB, stmt sqlbuild.Statement, dest any) error {
	res := tx.Raw(stmt.SQL, stmt.Args...).Scan(dest)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// execAffecting runs stmt and reports gorm.ErrRecordNotFound when it
// touched nothing.
func execAffecting(tx *gorm.DB, stmt sqlbuild.Statement) error {
	res := tx.Exec(stmt.SQL, stmt.Args...)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// exists evaluates a SELECT EXISTS statement on the primary, so guards never
// read from a lagging replica.
func exists(db *gorm.DB, stmt sqlbuild.Statement) (bool, error) {
	var found bool
	err := db.Clauses(dbresolver.Write).Raw(stmt.SQL, stmt.Args...).Scan(&found).Error
	return found, err
}
