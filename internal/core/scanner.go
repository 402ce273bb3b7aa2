package core

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// scanner handles reflection-based scanning of SQL rows into structs.
type scanner struct {
	mu    sync.RWMutex
	cache map[reflect.Type]*structInfo
}

// structInfo contains cached metadata about a struct type.
type structInfo struct {
	fields []*fieldInfo
}

// fieldInfo describes how to scan into a struct field.
type fieldInfo struct {
	index  []int  // field index path for nested structs
	dbName string // column name from db:"" tag or snake_cased field name
}

// newScanner creates a new scanner with empty cache.
func newScanner() *scanner {
	return &scanner{
		cache: make(map[reflect.Type]*structInfo),
	}
}

// globalScanner is the global scanner instance.
var globalScanner = newScanner()

// getStructInfo returns cached struct metadata or builds it.
func (s *scanner) getStructInfo(typ reflect.Type) (*structInfo, error) {
	s.mu.RLock()
	info, ok := s.cache[typ]
	s.mu.RUnlock()

	if ok {
		return info, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if info, ok := s.cache[typ]; ok {
		return info, nil
	}

	info, err := s.buildStructInfo(typ, nil)
	if err != nil {
		return nil, err
	}

	s.cache[typ] = info
	return info, nil
}

// buildStructInfo analyzes struct type and extracts field information.
func (s *scanner) buildStructInfo(typ reflect.Type, index []int) (*structInfo, error) {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("scanner: expected struct, got %s: %w", typ.Kind(), ErrInvalidModelType)
	}

	info := &structInfo{}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		if !field.IsExported() {
			continue
		}

		fieldIndex := append(append([]int{}, index...), i)

		// Embedded structs flatten into the parent's column set
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, err := s.buildStructInfo(field.Type, fieldIndex)
			if err != nil {
				return nil, err
			}
			info.fields = append(info.fields, nested.fields...)
			continue
		}

		dbName := DefaultFieldMapFunc(field.Name)
		if tag, ok := field.Tag.Lookup("db"); ok {
			if tag == "-" {
				continue
			}
			dbName = tag
		}

		info.fields = append(info.fields, &fieldInfo{
			index:  fieldIndex,
			dbName: strings.ToLower(dbName),
		})
	}

	return info, nil
}

// scanDests builds the per-column scan destinations for one struct value.
// Columns without a matching field land in a discarded dummy.
func scanDests(columns []string, fieldMap map[string]*fieldInfo, destValue reflect.Value) []interface{} {
	dests := make([]interface{}, len(columns))
	for i, colName := range columns {
		if f, ok := fieldMap[strings.ToLower(colName)]; ok {
			fieldValue := destValue
			for _, idx := range f.index {
				fieldValue = fieldValue.Field(idx)
			}
			dests[i] = fieldValue.Addr().Interface()
		} else {
			var dummy interface{}
			dests[i] = &dummy
		}
	}
	return dests
}

// fieldMapOf builds the column-name → field lookup table.
func fieldMapOf(info *structInfo) map[string]*fieldInfo {
	fieldMap := make(map[string]*fieldInfo, len(info.fields))
	for _, f := range info.fields {
		fieldMap[f.dbName] = f
	}
	return fieldMap
}

// scanRow scans the current SQL row into dest struct.
// The caller is responsible for having positioned rows on a valid row.
func (s *scanner) scanRow(rows *sql.Rows, dest interface{}) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return fmt.Errorf("scanner: dest must be pointer to struct, got %T: %w", dest, ErrInvalidModelType)
	}

	destValue = destValue.Elem()
	if destValue.Kind() != reflect.Struct {
		return fmt.Errorf("scanner: dest must be pointer to struct, got pointer to %s: %w", destValue.Kind(), ErrInvalidModelType)
	}

	info, err := s.getStructInfo(destValue.Type())
	if err != nil {
		return err
	}

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("scanner: failed to get columns: %w", err)
	}

	if err := rows.Scan(scanDests(columns, fieldMapOf(info), destValue)...); err != nil {
		return fmt.Errorf("scanner: scan failed: %w", err)
	}

	return nil
}

// scanRows scans all SQL rows into dest slice, returning the number of rows scanned.
func (s *scanner) scanRows(rows *sql.Rows, dest interface{}) (int64, error) {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return 0, fmt.Errorf("scanner: dest must be pointer to slice, got %T: %w", dest, ErrInvalidModelType)
	}

	sliceValue := destValue.Elem()
	if sliceValue.Kind() != reflect.Slice {
		return 0, fmt.Errorf("scanner: dest must be pointer to slice, got pointer to %s: %w", sliceValue.Kind(), ErrInvalidModelType)
	}

	elemType := sliceValue.Type().Elem()

	isPtr := elemType.Kind() == reflect.Ptr
	if isPtr {
		elemType = elemType.Elem()
	}

	if elemType.Kind() != reflect.Struct {
		return 0, fmt.Errorf("scanner: slice element must be struct or *struct, got %s: %w", elemType.Kind(), ErrInvalidModelType)
	}

	info, err := s.getStructInfo(elemType)
	if err != nil {
		return 0, err
	}

	columns, err := rows.Columns()
	if err != nil {
		return 0, fmt.Errorf("scanner: failed to get columns: %w", err)
	}

	fieldMap := fieldMapOf(info)

	var count int64
	for rows.Next() {
		elemValue := reflect.New(elemType).Elem()

		if err := rows.Scan(scanDests(columns, fieldMap, elemValue)...); err != nil {
			return count, fmt.Errorf("scanner: scan failed: %w", err)
		}

		if isPtr {
			sliceValue.Set(reflect.Append(sliceValue, elemValue.Addr()))
		} else {
			sliceValue.Set(reflect.Append(sliceValue, elemValue))
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return count, fmt.Errorf("scanner: rows iteration failed: %w", err)
	}

	return count, nil
}
