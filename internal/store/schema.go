package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

type column struct {
	index    int
	name     string
	jsonName string
	typ      reflect.Type
}

// Schema describes how an entity struct maps onto a table. Columns come from
// `db` struct tags; `json` tags give the wire names accepted in patches.
type Schema[T any] struct {
	table   string
	columns []column
	lookup  map[string]int
	idIndex int
}

// NewSchema builds the schema for T stored in the named table. It panics if
// T is not a struct or has no `db:"id"` field.
func NewSchema[T any](table string) *Schema[T] {
	var zero T
	rt := reflect.TypeOf(zero)
	if rt == nil || rt.Kind() != reflect.Struct {
		panic(fmt.Sprintf("store: schema for %q needs a struct type", table))
	}

	s := &Schema[T]{table: table, lookup: make(map[string]int), idIndex: -1}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("db")
		if name == "" || name == "-" {
			continue
		}
		jsonName, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if jsonName == "-" {
			jsonName = ""
		}

		pos := len(s.columns)
		s.columns = append(s.columns, column{index: i, name: name, jsonName: jsonName, typ: f.Type})
		s.lookup[name] = pos
		if jsonName != "" {
			s.lookup[jsonName] = pos
		}
		if name == "id" {
			s.idIndex = i
		}
	}
	if s.idIndex < 0 {
		panic(fmt.Sprintf("store: schema for %q has no id column", table))
	}
	return s
}

// Table returns the table name.
func (s *Schema[T]) Table() string { return s.table }

// Columns returns the column names in struct field order.
func (s *Schema[T]) Columns() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.name
	}
	return names
}

// Values returns the column values of rec in the order of Columns. Nil
// slices and maps come back empty so they satisfy NOT NULL columns.
func (s *Schema[T]) Values(rec T) []any {
	rv := reflect.ValueOf(rec)
	values := make([]any, len(s.columns))
	for i, c := range s.columns {
		values[i] = normalize(rv.Field(c.index)).Interface()
	}
	return values
}

// Value returns the value of one column of rec.
func (s *Schema[T]) Value(rec T, name string) (any, bool) {
	pos, ok := s.lookup[name]
	if !ok {
		return nil, false
	}
	return reflect.ValueOf(rec).Field(s.columns[pos].index).Interface(), true
}

// SetID stores id in the record's id field.
func (s *Schema[T]) SetID(rec *T, id string) {
	reflect.ValueOf(rec).Elem().Field(s.idIndex).SetString(id)
}

// DecodePatch converts a JSON object into a Patch. Keys may be JSON names or
// column names. The id cannot be patched.
func (s *Schema[T]) DecodePatch(raw map[string]json.RawMessage) (Patch, error) {
	patch := make(Patch, len(raw))
	for key, msg := range raw {
		pos, ok := s.lookup[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
		c := s.columns[pos]
		if c.name == "id" {
			return nil, fmt.Errorf("%w: id is immutable", ErrUnknownField)
		}

		target := reflect.New(c.typ)
		if err := json.Unmarshal(msg, target.Interface()); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", key, err)
		}
		patch[c.name] = normalize(target.Elem()).Interface()
	}
	return patch, nil
}

// Check rejects patches naming columns the table does not have.
func (s *Schema[T]) Check(patch Patch) error {
	for name := range patch {
		pos, ok := s.lookup[name]
		if !ok || s.columns[pos].name != name {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		if name == "id" {
			return fmt.Errorf("%w: id is immutable", ErrUnknownField)
		}
	}
	return nil
}

// Apply writes the patch values onto rec.
func (s *Schema[T]) Apply(rec *T, patch Patch) error {
	if err := s.Check(patch); err != nil {
		return err
	}
	rv := reflect.ValueOf(rec).Elem()
	for name, value := range patch {
		c := s.columns[s.lookup[name]]
		field := rv.Field(c.index)
		if value == nil {
			field.Set(reflect.Zero(c.typ))
			continue
		}
		v := reflect.ValueOf(value)
		if !v.Type().AssignableTo(c.typ) {
			if c.typ.Kind() == reflect.String || !v.Type().ConvertibleTo(c.typ) {
				return fmt.Errorf("field %s: cannot use %s as %s", name, v.Type(), c.typ)
			}
			v = v.Convert(c.typ)
		}
		field.Set(v)
	}
	return nil
}

// sortedKeys returns the patch columns in a stable order.
func sortedKeys(patch Patch) []string {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalize(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return reflect.MakeSlice(v.Type(), 0, 0)
		}
	case reflect.Map:
		if v.IsNil() {
			return reflect.MakeMap(v.Type())
		}
	}
	return v
}
