package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel inserts every db-tagged field of model into table.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}

// ColumnsOf lists the db-tagged columns of model in field order, for use
// as an explicit SELECT list.
func ColumnsOf(model any) ([]string, error) {
	cols, _, err := modelColumns(model)
	return cols, err
}

func modelColumns(model any) ([]string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, fmt.Errorf("model: nil pointer")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model: %s is not a struct", v.Kind())
	}

	var (
		cols []string
		vals []any
	)
	walkFields(v, func(col string, field reflect.Value) {
		cols = append(cols, col)
		vals = append(vals, field.Interface())
	})
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model: no db columns on %s", v.Type())
	}
	return cols, vals, nil
}

// walkFields visits tagged fields in declaration order. Untagged embedded
// structs are flattened into their parent, matching how sqlx scans them.
func walkFields(v reflect.Value, visit func(col string, field reflect.Value)) {
	typ := v.Type()
	for i := range typ.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(sf.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if sf.Anonymous && col == "" && sf.Type.Kind() == reflect.Struct {
			walkFields(v.Field(i), visit)
			continue
		}
		if col == "" || col == "-" {
			continue
		}
		visit(col, v.Field(i))
	}
}
