package ecpay

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag("payload")
	sentinel.Tag("mask")
}

// Item is a line item that renders itself into a payload map.
type Item interface {
	ToPayload() map[string]any
}

// ItemCollection is an ordered list of items of one type.
type ItemCollection[T Item] struct {
	items []T
}

// NewItemCollection returns a collection holding items.
func NewItemCollection[T Item](items ...T) *ItemCollection[T] {
	c := &ItemCollection[T]{}
	for _, it := range items {
		c.Add(it)
	}
	return c
}

// Add appends an item.
func (c *ItemCollection[T]) Add(item T) *ItemCollection[T] {
	c.items = append(c.items, item)
	return c
}

// All returns a copy of the items.
func (c *ItemCollection[T]) All() []T {
	return append([]T(nil), c.items...)
}

// First returns the first item.
func (c *ItemCollection[T]) First() (T, bool) {
	var zero T
	if len(c.items) == 0 {
		return zero, false
	}
	return c.items[0], true
}

// Last returns the last item.
func (c *ItemCollection[T]) Last() (T, bool) {
	var zero T
	if len(c.items) == 0 {
		return zero, false
	}
	return c.items[len(c.items)-1], true
}

// IsEmpty reports whether the collection has no items.
func (c *ItemCollection[T]) IsEmpty() bool {
	return len(c.items) == 0
}

// Len returns the number of items.
func (c *ItemCollection[T]) Len() int {
	return len(c.items)
}

// ToPayload renders every item, in order.
func (c *ItemCollection[T]) ToPayload() []map[string]any {
	out := make([]map[string]any, len(c.items))
	for i, it := range c.items {
		out[i] = it.ToPayload()
	}
	return out
}

// Filter returns a new collection with the items keep accepts.
func (c *ItemCollection[T]) Filter(keep func(T) bool) *ItemCollection[T] {
	out := &ItemCollection[T]{}
	for _, it := range c.items {
		if keep(it) {
			out.items = append(out.items, it)
		}
	}
	return out
}

// Clear removes every item.
func (c *ItemCollection[T]) Clear() *ItemCollection[T] {
	c.items = nil
	return c
}

// collectionPayloader is satisfied by any ItemCollection.
type collectionPayloader interface {
	ToPayload() []map[string]any
}

// StructPayload renders a struct into a payload using its payload tags.
// A tag of `payload:"Name"` sets the key; `payload:"Name,omitempty"` skips
// zero values; untagged fields are left out. Fields holding an Item or an
// ItemCollection are rendered through their ToPayload method.
func StructPayload[T any](v T) (Payload, error) {
	if typ := reflect.TypeFor[T](); typ.Kind() != reflect.Struct {
		return nil, &PayloadError{Reason: fmt.Sprintf("%s is not a struct", typ)}
	}

	rv := reflect.ValueOf(v)

	meta := sentinel.Scan[T]()
	out := Payload{}
	for _, field := range meta.Fields {
		tag, ok := field.Tags["payload"]
		if !ok || tag == "" || tag == "-" {
			continue
		}
		key, opts, _ := strings.Cut(tag, ",")
		fv := rv.FieldByIndex(field.Index)
		if opts == "omitempty" && fv.IsZero() {
			continue
		}
		out[key] = payloadValue(fv)
	}
	return out, nil
}

// MaskRules returns the mask rules declared on T with `mask:"type"` tags,
// keyed by the field's payload key.
func MaskRules[T any]() map[string]MaskType {
	rules := make(map[string]MaskType)
	if reflect.TypeFor[T]().Kind() != reflect.Struct {
		return rules
	}

	meta := sentinel.Scan[T]()
	for _, field := range meta.Fields {
		mt, ok := field.Tags["mask"]
		if !ok || !IsValidMaskType(MaskType(mt)) {
			continue
		}
		key := field.Name
		if tag, ok := field.Tags["payload"]; ok && tag != "" && tag != "-" {
			key, _, _ = strings.Cut(tag, ",")
		}
		rules[key] = MaskType(mt)
	}
	return rules
}

func payloadValue(fv reflect.Value) any {
	if !fv.CanInterface() {
		return nil
	}
	if fv.Kind() == reflect.Pointer && fv.IsNil() {
		return nil
	}
	switch x := fv.Interface().(type) {
	case collectionPayloader:
		return x.ToPayload()
	case Item:
		return x.ToPayload()
	default:
		return x
	}
}
