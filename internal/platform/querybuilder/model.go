package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// UpsertModel builds an INSERT ... ON CONFLICT DO UPDATE from a struct's db
// tags. Columns tagged `db:"name,readonly"` are inserted but never updated.
func UpsertModel(table string, model any, conflict ...string) (string, []any, error) {
	cols, vals, readonly, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}
	if len(conflict) == 0 {
		return "", nil, fmt.Errorf("upsert conflict columns are required")
	}

	skip := make(map[string]struct{}, len(conflict)+len(readonly))
	for _, col := range append(append([]string(nil), conflict...), readonly...) {
		skip[col] = struct{}{}
	}
	update := make([]string, 0, len(cols))
	for _, col := range cols {
		if _, ok := skip[col]; !ok {
			update = append(update, col)
		}
	}

	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		OnConflictUpdate(conflict, update...).
		ToSQL()
}

func modelColumns(model any) (cols []string, vals []any, readonly []string, err error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		parts := strings.Split(field.Tag.Get("db"), ",")
		col := strings.TrimSpace(parts[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
		for _, opt := range parts[1:] {
			if strings.TrimSpace(opt) == "readonly" {
				readonly = append(readonly, col)
			}
		}
	}
	if len(cols) == 0 {
		return nil, nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, readonly, nil
}
