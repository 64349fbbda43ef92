package ingest

import (
	"encoding/json"
	"fmt"

	"rapidpro_warehouse/internal/domain"
	"rapidpro_warehouse/internal/temba"
)

// FieldKind selects the conversion applied to one remote attribute.
type FieldKind int

const (
	// KindScalar copies the value as-is.
	KindScalar FieldKind = iota
	// KindUUID is the remote uuid identity, validated and kept on the row.
	KindUUID
	// KindRemoteID is the remote integer "id" key, kept as rapidpro_id so
	// it never shadows the local primary key.
	KindRemoteID
	// KindEmbedded maps a nested object through its own mapping. No local
	// fetch or save happens for embedded objects.
	KindEmbedded
	// KindEmbeddedList maps each element of a nested list.
	KindEmbeddedList
	// KindEmbeddedMap maps each value of a nested object keyed by name,
	// preserving the key as a "key" attribute on the value.
	KindEmbeddedMap
	// KindReference resolves a remote object reference with get-or-fetch
	// semantics. A reference whose remote object is gone becomes null.
	KindReference
	// KindReferenceList resolves each element of a list of references,
	// dropping elements that no longer resolve.
	KindReferenceList
)

// FieldSpec maps one remote attribute to a local field.
type FieldSpec struct {
	Remote string
	Local  string // defaults to Remote
	Kind   FieldKind
	// Ref is the nested mapping for embedded kinds.
	Ref *Mapping
	// RefCollection names the target collection for reference kinds.
	RefCollection string
}

func (f FieldSpec) localName() string {
	if f.Local != "" {
		return f.Local
	}
	return f.Remote
}

// Mapping is the declarative field map for one entity type, evaluated by the
// generic importer. Remote attributes not listed here are ignored.
type Mapping struct {
	Fields []FieldSpec
}

// identity returns the field spec that identifies records of this type: the
// declared uuid when the mapping has one, else the remote integer id.
func (m *Mapping) identity() (FieldSpec, bool) {
	var id FieldSpec
	var hasID bool
	for _, spec := range m.Fields {
		switch spec.Kind {
		case KindUUID:
			return spec, true
		case KindRemoteID:
			id, hasID = spec, true
		}
	}
	return id, hasID
}

// mapEmbedded converts a nested object through a mapping. Embedded objects
// only carry scalar, id and embedded kinds; references never appear below
// the top level.
func mapEmbedded(m *Mapping, rec temba.Record) (domain.JSONMap, error) {
	out := domain.JSONMap{}
	for _, spec := range m.Fields {
		value, ok := rec[spec.Remote]
		if !ok || value == nil {
			continue
		}
		switch spec.Kind {
		case KindScalar:
			out[spec.localName()] = value
		case KindRemoteID:
			id, ok := asInt64(value)
			if !ok {
				return nil, fmt.Errorf("field %s: expected integer id, got %T", spec.Remote, value)
			}
			out["rapidpro_id"] = id
		case KindEmbedded, KindEmbeddedList, KindEmbeddedMap:
			mapped, err := embedValue(spec, value)
			if err != nil {
				return nil, err
			}
			out[spec.localName()] = mapped
		default:
			return nil, fmt.Errorf("field %s: reference kinds not allowed in embedded object", spec.Remote)
		}
	}
	return out, nil
}

// embedValue converts one embedded-kind value through its nested mapping.
func embedValue(spec FieldSpec, value any) (any, error) {
	switch spec.Kind {
	case KindEmbedded:
		nested, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %s: expected object, got %T", spec.Remote, value)
		}
		return mapEmbedded(spec.Ref, temba.Record(nested))
	case KindEmbeddedList:
		list, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("field %s: expected list, got %T", spec.Remote, value)
		}
		mapped := make([]any, 0, len(list))
		for _, elem := range list {
			nested, ok := elem.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("field %s: expected object element, got %T", spec.Remote, elem)
			}
			m, err := mapEmbedded(spec.Ref, temba.Record(nested))
			if err != nil {
				return nil, err
			}
			mapped = append(mapped, m)
		}
		return mapped, nil
	case KindEmbeddedMap:
		byKey, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %s: expected map, got %T", spec.Remote, value)
		}
		mapped := map[string]any{}
		for key, elem := range byKey {
			nested, ok := elem.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("field %s[%s]: expected object, got %T", spec.Remote, key, elem)
			}
			m, err := mapEmbedded(spec.Ref, temba.Record(nested))
			if err != nil {
				return nil, err
			}
			m["key"] = key
			mapped[key] = m
		}
		return mapped, nil
	default:
		return nil, fmt.Errorf("field %s: not an embedded kind", spec.Remote)
	}
}

// asInt64 normalizes the number representations a decoded JSON record can
// carry.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
