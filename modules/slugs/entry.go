package slugs

import (
	"fmt"

	"github.com/dmitrymomot/sluggable"
)

// Entry is a map-backed record: the text to slug, the scope values and the
// resulting slug.
type Entry struct {
	attrs map[string]any
}

func NewEntry(text string, scope []sluggable.Field) *Entry {
	e := &Entry{attrs: map[string]any{textAttr: text, slugAttr: ""}}
	for _, f := range scope {
		e.attrs[f.Name] = f.Value
	}
	return e
}

// Slug returns the assigned slug.
func (e *Entry) Slug() string {
	s, _ := e.attrs[slugAttr].(string)
	return s
}

func (e *Entry) ReadAttribute(name string) (any, error) {
	v, ok := e.attrs[name]
	if !ok {
		return nil, fmt.Errorf("unknown attribute %q", name)
	}
	return v, nil
}

func (e *Entry) WriteAttribute(name, value string) error {
	e.attrs[name] = value
	return nil
}
