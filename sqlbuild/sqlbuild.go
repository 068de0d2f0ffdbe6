// Package sqlbuild renders parameterized statements against allow-listed
// tables. Identifiers are quoted, values are always bound, and placeholders
// use gorm's ? form so the postgres dialector numbers them.
package sqlbuild

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/rpupo63/devtracker-backend/payload"
)

var (
	ErrEmptyUpdate   = errors.New("no fields to update")
	ErrEmptyInsert   = errors.New("no fields to insert")
	ErrUnknownColumn = errors.New("unknown column")
	ErrUnknownTable  = errors.New("unknown table")
)

// Table names a table and the columns statements may touch.
type Table struct {
	Name    string
	Columns []string
}

func (t Table) has(column string) bool {
	return slices.Contains(t.Columns, column)
}

func (t Table) check(columns ...string) error {
	if t.Name == "" || len(t.Columns) == 0 {
		return ErrUnknownTable
	}
	for _, c := range columns {
		if !t.has(c) {
			return fmt.Errorf("%w %q on %s", ErrUnknownColumn, c, t.Name)
		}
	}
	return nil
}

// Statement is SQL text plus its bound arguments in placeholder order.
type Statement struct {
	SQL  string
	Args []any
}

// Quote renders a single identifier, doubling embedded quotes.
func Quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// Insert builds INSERT ... VALUES ... RETURNING *.
func Insert(t Table, fields payload.Fields) (Statement, error) {
	if len(fields) == 0 {
		return Statement{}, ErrEmptyInsert
	}
	if err := t.check(fields.Names()...); err != nil {
		return Statement{}, err
	}

	cols, marks, args := split(fields)
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		Quote(t.Name), cols, marks)
	return Statement{SQL: sql, Args: args}, nil
}

// Update builds a row-constructor UPDATE scoped to one id. ROW keeps the
// single column form valid.
func Update(t Table, fields payload.Fields, id int64) (Statement, error) {
	if len(fields) == 0 {
		return Statement{}, ErrEmptyUpdate
	}
	if err := t.check(append(fields.Names(), "id")...); err != nil {
		return Statement{}, err
	}

	cols, marks, args := split(fields)
	sql := fmt.Sprintf("UPDATE %s SET (%s) = ROW(%s) WHERE %s = ? RETURNING *",
		Quote(t.Name), cols, marks, Quote("id"))
	return Statement{SQL: sql, Args: append(args, id)}, nil
}

func Delete(t Table, id int64) (Statement, error) {
	if err := t.check("id"); err != nil {
		return Statement{}, err
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", Quote(t.Name), Quote("id"))
	return Statement{SQL: sql, Args: []any{id}}, nil
}

// SelectBy builds SELECT * ... WHERE column = ?.
func SelectBy(t Table, column string, value any) (Statement, error) {
	if err := t.check(column); err != nil {
		return Statement{}, err
	}

	sql := fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", Quote(t.Name), Quote(column))
	return Statement{SQL: sql, Args: []any{Bind(value)}}, nil
}

// Exists builds SELECT EXISTS (...) for column = ?.
func Exists(t Table, column string, value any) (Statement, error) {
	if err := t.check(column); err != nil {
		return Statement{}, err
	}

	sql := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ?)", Quote(t.Name), Quote(column))
	return Statement{SQL: sql, Args: []any{Bind(value)}}, nil
}

func split(fields payload.Fields) (cols, marks string, args []any) {
	quoted := make([]string, len(fields))
	placeholders := make([]string, len(fields))
	args = make([]any, len(fields))
	for i, f := range fields {
		quoted[i] = Quote(f.Name)
		placeholders[i] = "?"
		args[i] = Bind(f.Value)
	}
	return strings.Join(quoted, ", "), strings.Join(placeholders, ", "), args
}

// Bind turns decoded JSON values into driver friendly arguments.
func Bind(value any) any {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return string(b)
	}
	return value
}
