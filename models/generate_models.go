package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// All returns one zero value of every persisted model, in schema order.
func All() []any {
	return []any{
		Developer{},
		DeveloperInfo{},
		Project{},
		Technology{},
		ProjectTechnology{},
	}
}

// GenerateModels writes typed gorm/gen query helpers for every model into
// ./generated, then logs the column report. The schema comes from
// database/schema.sql; nothing is migrated here.
func GenerateModels(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	genLog := log.With().Str("component", "gen").Logger()
	db = db.Session(&gorm.Session{
		Logger:                 logger.New(&genLog, logger.Config{LogLevel: logger.Info}),
		SkipDefaultTransaction: true,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)

	if err := GenerateColumnMismatchReportStandalone(db); err != nil {
		return err
	}

	g.Execute()
	log.Info().Str("out", "./generated").Msg("model generation complete")
	return nil
}

// ColumnMismatch lists the columns of one table that no model field maps to.
type ColumnMismatch struct {
	Table   string
	Missing []string
	Exists  bool
}

// ColumnMismatches compares every model with the live table behind it.
func ColumnMismatches(db *gorm.DB) ([]ColumnMismatch, error) {
	var report []ColumnMismatch

	for _, model := range All() {
		table := model.(interface{ TableName() string }).TableName()
		entry := ColumnMismatch{Table: table}

		if !db.Migrator().HasTable(table) {
			report = append(report, entry)
			continue
		}
		entry.Exists = true

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s: %w", table, err)
		}
		columns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			columns = append(columns, ct.Name())
		}

		entry.Missing = findColumnMismatches(columns, getModelFields(model))
		report = append(report, entry)
	}

	return report, nil
}

// GenerateColumnMismatchReportStandalone logs the column report.
func GenerateColumnMismatchReportStandalone(db *gorm.DB) error {
	report, err := ColumnMismatches(db)
	if err != nil {
		return err
	}

	total := 0
	for _, entry := range report {
		switch {
		case !entry.Exists:
			log.Warn().Str("table", entry.Table).Msg("table does not exist; apply the schema first")
		case len(entry.Missing) > 0:
			log.Warn().Str("table", entry.Table).Strs("columns", entry.Missing).Msg("columns without a model field")
		default:
			log.Info().Str("table", entry.Table).Msg("all columns mapped")
		}
		total += len(entry.Missing)
	}

	log.Info().Int("mismatched", total).Msg("column report complete")
	return nil
}

// getModelFields returns the gorm column names declared on model. Fields
// without a column tag are relations and are skipped.
func getModelFields(model any) []string {
	var fields []string
	t := reflect.TypeOf(model)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		if column := columnFromTag(field.Tag.Get("gorm")); column != "" {
			fields = append(fields, column)
		}
	}

	return fields
}

func columnFromTag(tag string) string {
	for _, part := range strings.Split(tag, ";") {
		if column, ok := strings.CutPrefix(strings.TrimSpace(part), "column:"); ok {
			return column
		}
	}
	return ""
}

// findColumnMismatches keeps the table columns no model field claims.
func findColumnMismatches(dbColumns, modelFields []string) []string {
	claimed := make(map[string]struct{}, len(modelFields))
	for _, field := range modelFields {
		claimed[field] = struct{}{}
	}

	var missing []string
	for _, column := range dbColumns {
		if _, ok := claimed[column]; !ok {
			missing = append(missing, column)
		}
	}
	return missing
}
