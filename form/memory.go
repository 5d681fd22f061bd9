package form

import "sync"

// MemoryField is a Field backed by plain values, used outside the browser.
type MemoryField struct {
	spec Spec

	mu      sync.Mutex
	value   string
	invalid bool
	focused bool
}

func (f *MemoryField) Name() string   { return f.spec.Name }
func (f *MemoryField) Label() string  { return f.spec.Label }
func (f *MemoryField) Kind() Kind     { return f.spec.Kind }
func (f *MemoryField) Required() bool { return f.spec.Required }

func (f *MemoryField) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *MemoryField) SetValue(v string) {
	f.mu.Lock()
	f.value = v
	f.mu.Unlock()
}

func (f *MemoryField) SetInvalid(invalid bool) {
	f.mu.Lock()
	f.invalid = invalid
	f.mu.Unlock()
}

func (f *MemoryField) Invalid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalid
}

func (f *MemoryField) Focus() {
	f.mu.Lock()
	f.focused = true
	f.mu.Unlock()
}

// Focused reports whether Focus was called since the last Blur.
func (f *MemoryField) Focused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focused
}

func (f *MemoryField) Blur() {
	f.mu.Lock()
	f.focused = false
	f.mu.Unlock()
}

// MemoryForm is a Form of MemoryFields.
type MemoryForm struct {
	fields []*MemoryField
}

// NewMemoryForm builds a form with one field per spec, in order.
func NewMemoryForm(specs []Spec) *MemoryForm {
	m := &MemoryForm{fields: make([]*MemoryField, len(specs))}
	for i, spec := range specs {
		m.fields[i] = &MemoryField{spec: spec}
	}
	return m
}

func (m *MemoryForm) Fields() []Field {
	out := make([]Field, len(m.fields))
	for i, f := range m.fields {
		out[i] = f
	}
	return out
}

// Field returns the named field or nil.
func (m *MemoryForm) Field(name string) *MemoryField {
	for _, f := range m.fields {
		if f.spec.Name == name {
			return f
		}
	}
	return nil
}

// Fill sets the value of every named field present in values.
func (m *MemoryForm) Fill(values map[string]string) {
	for name, v := range values {
		if f := m.Field(name); f != nil {
			f.SetValue(v)
		}
	}
}

// Values returns the raw field values keyed by name.
func (m *MemoryForm) Values() map[string]string {
	out := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		out[f.spec.Name] = f.Value()
	}
	return out
}

// Invalid returns the names of fields carrying an error indicator.
func (m *MemoryForm) Invalid() []string {
	var out []string
	for _, f := range m.fields {
		if f.Invalid() {
			out = append(out, f.spec.Name)
		}
	}
	return out
}
