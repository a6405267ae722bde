package postgres

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/ec-win-24/nexuspoint/core"
)

// Mapper converts between a domain type D and its persistence entity E, and
// translates domain vocabulary (field and relation names) into the entity
// schema. It is the single seam where the domain/persistence split is paid
// for: repositories and services speak domain names only.
//
// Production types are expected to supply a hand-written Mapper; the
// reflective StructMapper exists as an opt-in fallback for trivial shapes.
type Mapper[D any, E any] interface {
	ToEntity(domain *D) (*E, error)
	ToDomain(entity *E) (*D, error)
	// Column translates a domain field name into the entity's database
	// column. Unknown fields return an error wrapping core.ErrFieldMapping.
	Column(domainField string) (string, error)
	// Relation translates a domain relation name into the entity's declared
	// relation. Unknown relations return an error wrapping
	// core.ErrFieldMapping.
	Relation(domainRelation string) (string, error)
}

// StructMapper maps two struct types by matching field names: exact name
// first, then domain name plus the "Entity" suffix, then a unique entity
// field that has the domain name as suffix. Every domain field must resolve
// to an entity field with a convertible type; anything unresolved fails at
// construction, never silently at query time.
type StructMapper[D any, E any] struct {
	pairs   []fieldPair
	columns map[string]string
}

type fieldPair struct {
	domainIndex int
	entityIndex int
	convert     bool
}

// NewStructMapper builds a reflective mapper between D and E, validating the
// full field mapping up front.
func NewStructMapper[D any, E any]() (*StructMapper[D, E], error) {
	domainType := reflect.TypeFor[D]()
	entityType := reflect.TypeFor[E]()
	if domainType.Kind() != reflect.Struct || entityType.Kind() != reflect.Struct {
		return nil, fmt.Errorf(
			"cannot map %s to %s: both types must be structs",
			domainType,
			entityType,
		)
	}

	mapper := &StructMapper[D, E]{
		columns: make(map[string]string, domainType.NumField()),
	}
	for i := 0; i < domainType.NumField(); i++ {
		domainField := domainType.Field(i)
		if !domainField.IsExported() {
			continue
		}
		entityField, err := resolveEntityField(entityType, domainField.Name)
		if err != nil {
			return nil, err
		}
		convert := domainField.Type != entityField.Type
		if convert && !domainField.Type.ConvertibleTo(entityField.Type) {
			return nil, fmt.Errorf(
				"cannot map field %s.%s (%s) to %s.%s (%s): %w",
				domainType.Name(), domainField.Name, domainField.Type,
				entityType.Name(), entityField.Name, entityField.Type,
				core.ErrFieldMapping,
			)
		}
		mapper.pairs = append(mapper.pairs, fieldPair{
			domainIndex: i,
			entityIndex: entityField.Index[0],
			convert:     convert,
		})
		mapper.columns[domainField.Name] = columnName(entityField)
	}
	return mapper, nil
}

// resolveEntityField finds the entity counterpart of a domain field name:
// exact name, then name+"Entity", then a unique suffix match.
func resolveEntityField(entityType reflect.Type, name string) (reflect.StructField, error) {
	if field, ok := entityType.FieldByName(name); ok {
		return field, nil
	}
	if field, ok := entityType.FieldByName(name + "Entity"); ok {
		return field, nil
	}
	var match reflect.StructField
	found := 0
	for i := 0; i < entityType.NumField(); i++ {
		field := entityType.Field(i)
		if field.IsExported() && strings.HasSuffix(field.Name, name) {
			match = field
			found++
		}
	}
	switch found {
	case 1:
		return match, nil
	case 0:
		return reflect.StructField{}, fmt.Errorf(
			"field %s has no counterpart on %s: %w",
			name, entityType.Name(), core.ErrFieldMapping,
		)
	default:
		return reflect.StructField{}, fmt.Errorf(
			"field %s matches %d fields on %s: %w",
			name, found, entityType.Name(), core.ErrFieldMapping,
		)
	}
}

// columnName returns the database column of an entity field: its db tag when
// present, the snake-cased field name otherwise.
func columnName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("db"); ok && tag != "" {
		return tag
	}
	return toSnakeCase(field.Name)
}

func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m *StructMapper[D, E]) ToEntity(domain *D) (*E, error) {
	if domain == nil {
		return nil, core.ErrNilValue
	}
	var entity E
	src := reflect.ValueOf(domain).Elem()
	dst := reflect.ValueOf(&entity).Elem()
	for _, pair := range m.pairs {
		value := src.Field(pair.domainIndex)
		if pair.convert {
			value = value.Convert(dst.Field(pair.entityIndex).Type())
		}
		dst.Field(pair.entityIndex).Set(value)
	}
	return &entity, nil
}

func (m *StructMapper[D, E]) ToDomain(entity *E) (*D, error) {
	if entity == nil {
		return nil, core.ErrNilValue
	}
	var domain D
	src := reflect.ValueOf(entity).Elem()
	dst := reflect.ValueOf(&domain).Elem()
	for _, pair := range m.pairs {
		value := src.Field(pair.entityIndex)
		if pair.convert {
			value = value.Convert(dst.Field(pair.domainIndex).Type())
		}
		dst.Field(pair.domainIndex).Set(value)
	}
	return &domain, nil
}

func (m *StructMapper[D, E]) Column(domainField string) (string, error) {
	column, ok := m.columns[domainField]
	if !ok {
		return "", fmt.Errorf("field %s: %w", domainField, core.ErrFieldMapping)
	}
	return column, nil
}

func (m *StructMapper[D, E]) Relation(domainRelation string) (string, error) {
	entityType := reflect.TypeFor[E]()
	field, err := resolveEntityField(entityType, domainRelation)
	if err != nil {
		return "", err
	}
	return field.Name, nil
}
