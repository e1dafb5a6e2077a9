// Package ply provides a parser for ASCII PLY (Polygon File Format) meshes.
//
// A parsed Model is a schema-typed store: named elements, each with a fixed
// instance count and an ordered set of scalar or list properties. The Model
// is immutable once Parse returns.
package ply

// PropertyKind distinguishes scalar properties from list properties.
type PropertyKind int

const (
	ScalarProperty PropertyKind = iota // One value per instance
	ListProperty                       // Variable-length values per instance
)

// String returns a human-readable property kind name.
func (k PropertyKind) String() string {
	switch k {
	case ScalarProperty:
		return "scalar"
	case ListProperty:
		return "list"
	default:
		return "unknown"
	}
}

// Property is a property declaration from the header.
// Type tokens are kept as declared; values are always stored as float64.
type Property struct {
	Name      string
	Kind      PropertyKind
	Type      string // Scalar value type, or list value type
	CountType string // List count type (empty for scalars)
}

// Element is a named group of instances sharing the same properties.
type Element struct {
	name  string
	count int

	properties []Property
	scalars    map[string][]float64
	lists      map[string][][]float64
}

func newElement(name string, count int) *Element {
	return &Element{
		name:    name,
		count:   count,
		scalars: make(map[string][]float64),
		lists:   make(map[string][][]float64),
	}
}

// Name returns the element name.
func (e *Element) Name() string { return e.name }

// Count returns the declared instance count.
func (e *Element) Count() int { return e.count }

// Properties returns the property declarations in header order.
func (e *Element) Properties() []Property {
	return append([]Property(nil), e.properties...)
}

func (e *Element) hasProperty(name string) bool {
	for _, p := range e.properties {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (e *Element) propertyNames(kind PropertyKind) []string {
	var names []string
	for _, p := range e.properties {
		if p.Kind == kind {
			names = append(names, p.Name)
		}
	}
	return names
}

// Model is a fully parsed PLY file.
type Model struct {
	order    []string
	elements map[string]*Element
}

// Elements returns element names in declaration order.
func (m *Model) Elements() []string {
	return append([]string(nil), m.order...)
}

// HasElement reports whether an element with the given name was declared.
func (m *Model) HasElement(name string) bool {
	_, ok := m.elements[name]
	return ok
}

// Element returns the named element.
func (m *Model) Element(name string) (*Element, bool) {
	e, ok := m.elements[name]
	return e, ok
}

// Count returns the declared instance count of an element, or 0 if absent.
func (m *Model) Count(element string) int {
	if e, ok := m.elements[element]; ok {
		return e.count
	}
	return 0
}

// ScalarProperties returns the scalar property names of an element in
// declaration order.
func (m *Model) ScalarProperties(element string) []string {
	if e, ok := m.elements[element]; ok {
		return e.propertyNames(ScalarProperty)
	}
	return nil
}

// ListProperties returns the list property names of an element in
// declaration order.
func (m *Model) ListProperties(element string) []string {
	if e, ok := m.elements[element]; ok {
		return e.propertyNames(ListProperty)
	}
	return nil
}

// ScalarValue returns the value of a scalar property for one instance.
func (m *Model) ScalarValue(element string, index int, property string) (float64, bool) {
	e, ok := m.elements[element]
	if !ok {
		return 0, false
	}
	values, ok := e.scalars[property]
	if !ok || index < 0 || index >= len(values) {
		return 0, false
	}
	return values[index], true
}

// ListValue returns a copy of a list property for one instance.
func (m *Model) ListValue(element string, index int, property string) ([]float64, bool) {
	e, ok := m.elements[element]
	if !ok {
		return nil, false
	}
	lists, ok := e.lists[property]
	if !ok || index < 0 || index >= len(lists) {
		return nil, false
	}
	return append([]float64(nil), lists[index]...), true
}
