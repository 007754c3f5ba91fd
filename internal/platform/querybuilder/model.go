package querybuilder

import (
	"fmt"
	"reflect"
)

// InsertModel builds an INSERT for a struct using its db tags. Fields tagged
// db:"-" or without a db tag are skipped. suffix may carry an ON CONFLICT
// clause.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", nil, fmt.Errorf("insert model: nil model")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("insert model: want struct, got %s", v.Kind())
	}

	t := v.Type()
	columns := make([]string, 0, t.NumField())
	values := make([]any, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, tag)
		values = append(values, v.Field(i).Interface())
	}

	if len(columns) == 0 {
		return "", nil, fmt.Errorf("insert model: no db-tagged fields on %s", t.Name())
	}

	return InsertInto(table).Columns(columns...).Values(values...).Suffix(suffix).ToSQL()
}
