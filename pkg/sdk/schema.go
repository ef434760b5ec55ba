package localsearch

import (
	"fmt"
	"reflect"
	"strings"
)

const tagKey = "localsearch"

// schemaMeta holds parsed struct tag metadata, cached per TypedIndex.
type schemaMeta struct {
	typ   reflect.Type
	idIdx int
	// Struct fields holding tags, in declaration order.
	tagFields []fieldMapping
}

type fieldMapping struct {
	structIdx int
	name      string
	list      bool // []string
}

var stringSliceType = reflect.TypeOf([]string(nil))

// parseSchema reflects on T and extracts localsearch struct tag metadata.
func parseSchema[T any]() (*schemaMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return nil, fmt.Errorf("localsearch: type parameter must be a struct")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("localsearch: type %s is not a struct", t)
	}

	meta := &schemaMeta{typ: t, idIdx: -1}
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		if err := applyTag(meta, i, f, tag); err != nil {
			return nil, err
		}
	}

	if meta.idIdx == -1 {
		return nil, fmt.Errorf("localsearch: no field with `localsearch:\"...,id\"` tag in %s", t)
	}
	if len(meta.tagFields) == 0 {
		return nil, fmt.Errorf("localsearch: no field with `localsearch:\"...,tag\"` tag in %s", t)
	}
	return meta, nil
}

// applyTag processes a single struct field's localsearch tag.
func applyTag(meta *schemaMeta, idx int, f reflect.StructField, tag string) error {
	name, modifier, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}

	switch modifier {
	case "id":
		if meta.idIdx != -1 {
			return fmt.Errorf("localsearch: duplicate id tag on field %s", f.Name)
		}
		if f.Type.Kind() != reflect.String {
			return fmt.Errorf("localsearch: id field %s must be a string", f.Name)
		}
		meta.idIdx = idx
	case "tag":
		switch {
		case f.Type.Kind() == reflect.String:
			meta.tagFields = append(meta.tagFields, fieldMapping{structIdx: idx, name: name})
		case f.Type == stringSliceType:
			meta.tagFields = append(meta.tagFields, fieldMapping{structIdx: idx, name: name, list: true})
		default:
			return fmt.Errorf("localsearch: tag field %s must be string or []string", f.Name)
		}
	case "":
		// Mapped name only, not searchable.
	default:
		return fmt.Errorf("localsearch: unknown modifier %q on field %s", modifier, f.Name)
	}
	return nil
}

// toDocument converts a typed struct to a Document. Empty tags are skipped.
func (m *schemaMeta) toDocument(item any) Document {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return Document{}
		}
		v = v.Elem()
	}

	doc := Document{ID: v.Field(m.idIdx).String()}
	for _, tf := range m.tagFields {
		fv := v.Field(tf.structIdx)
		if !tf.list {
			if s := fv.String(); s != "" {
				doc.Tags = append(doc.Tags, s)
			}
			continue
		}
		for i := range fv.Len() {
			if s := fv.Index(i).String(); s != "" {
				doc.Tags = append(doc.Tags, s)
			}
		}
	}
	return doc
}
