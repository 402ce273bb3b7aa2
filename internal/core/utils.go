package core

import (
	"reflect"
	"strings"
)

// DefaultFieldMapFunc converts Go struct field names to snake_case database column names.
func DefaultFieldMapFunc(field string) string {
	result := make([]rune, 0, len(field)+5)
	for i, r := range field {
		if i > 0 && 'A' <= r && r <= 'Z' {
			result = append(result, '_')
		}
		result = append(result, r)
	}
	return strings.ToLower(string(result))
}

// TableModel defines an interface for models that provide custom table names.
type TableModel interface {
	TableName() string
}

// GetTableName extracts the database table name from a model value.
// A TableModel implementation wins; otherwise the struct name is snake_cased.
// Slices and pointers resolve to their element type.
func GetTableName(model interface{}) string {
	if tm, ok := model.(TableModel); ok {
		return tm.TableName()
	}

	t := reflect.TypeOf(model)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return ""
	}

	// A pointer model may still carry a TableName method on the value type
	if tm, ok := reflect.Zero(t).Interface().(TableModel); ok {
		return tm.TableName()
	}

	return DefaultFieldMapFunc(t.Name())
}
