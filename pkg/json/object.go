package json

import "sort"

// Object is a JSON object that preserves key declaration order. Expansion
// needs both iteration orders: declaration order for the default key
// pass, and lexicographic order when deterministic output is requested.
type Object struct {
	keys    []string
	entries map[string]Value
}

// Kind implements Value.
func (*Object) Kind() Kind { return KindObject }

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{entries: make(map[string]Value)}
}

// Get returns the value for key and whether the key is present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.entries[key]
	return v, ok
}

// Value returns the value for key, or nil when absent. A present JSON
// null is returned as Null, distinguishable from absence.
func (o *Object) Value(key string) Value {
	return o.entries[key]
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.entries[key]
	return ok
}

// Set stores value under key, appending the key when new and keeping its
// original position when overwriting.
func (o *Object) Set(key string, value Value) {
	if o.entries == nil {
		o.entries = make(map[string]Value)
	}
	if _, ok := o.entries[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.entries[key] = value
}

// Delete removes key, preserving the order of the remaining keys. It
// reports whether the key was present.
func (o *Object) Delete(key string) bool {
	if _, ok := o.entries[key]; !ok {
		return false
	}
	delete(o.entries, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.entries)
}

// Keys returns the keys in declaration order. The slice is a copy.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// SortedKeys returns the keys in lexicographic order.
func (o *Object) SortedKeys() []string {
	keys := o.Keys()
	sort.Strings(keys)
	return keys
}

// OrderedKeys returns SortedKeys when sorted is true, Keys otherwise.
func (o *Object) OrderedKeys(sorted bool) []string {
	if sorted {
		return o.SortedKeys()
	}
	return o.Keys()
}

// Clone returns a shallow copy: the key table is duplicated, the values
// are shared.
func (o *Object) Clone() *Object {
	c := &Object{
		keys:    make([]string, len(o.keys)),
		entries: make(map[string]Value, len(o.entries)),
	}
	copy(c.keys, o.keys)
	for k, v := range o.entries {
		c.entries[k] = v
	}
	return c
}
