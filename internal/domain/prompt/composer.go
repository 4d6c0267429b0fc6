package prompt

import (
	"fmt"
	"strings"

	apperrors "github.com/yanqian/ai-health-assistant/pkg/errors"
)

// Composer fills user text into the fixed templates. It is immutable after
// construction and safe for concurrent use.
type Composer struct {
	templates map[TemplateID]string
}

// NewComposer validates the template table. Overrides replace individual
// defaults; blank overrides are ignored.
func NewComposer(overrides map[TemplateID]string) (*Composer, error) {
	templates := Defaults()
	for id, tpl := range overrides {
		if _, known := templates[id]; !known {
			return nil, fmt.Errorf("unknown prompt template %q", id)
		}
		if strings.TrimSpace(tpl) == "" {
			continue
		}
		templates[id] = tpl
	}
	for _, id := range IDs() {
		placeholder := Placeholder(id)
		if n := strings.Count(templates[id], placeholder); n != 1 {
			return nil, fmt.Errorf("prompt template %q must contain %s exactly once, found %d", id, placeholder, n)
		}
	}
	return &Composer{templates: templates}, nil
}

// Compose performs one literal substitution of value into the template.
// The value is inserted verbatim and never expanded further.
func (c *Composer) Compose(id TemplateID, value string) (string, error) {
	tpl, ok := c.templates[id]
	if !ok {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown prompt template %q", id), nil)
	}
	return strings.Replace(tpl, Placeholder(id), value, 1), nil
}

// Template returns the raw template text.
func (c *Composer) Template(id TemplateID) (string, bool) {
	tpl, ok := c.templates[id]
	return tpl, ok
}
