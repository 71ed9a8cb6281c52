package memdom

import (
	"strings"

	"github.com/vango-dev/hyperoop/pkg/dom"
)

type declaration struct {
	name  string
	value string
}

// Style is an inline style declaration kept in sync with the owner's style
// attribute.
type Style struct {
	owner *Element
	decls []declaration
}

// CSSText serialises the declarations ("color: red; display: block;").
func (s *Style) CSSText() string {
	parts := make([]string, len(s.decls))
	for i, d := range s.decls {
		parts[i] = d.name + ": " + d.value + ";"
	}
	return strings.Join(parts, " ")
}

// SetCSSText replaces every declaration.
func (s *Style) SetCSSText(text string) {
	s.parse(text)
	s.sync()
}

// SetProperty sets a property by CSS name. An empty value removes it.
func (s *Style) SetProperty(name, value string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if value == "" {
		s.remove(name)
	} else {
		s.put(name, value)
	}
	s.sync()
}

// Set sets a property by script name ("backgroundColor").
func (s *Style) Set(name, value string) {
	s.SetProperty(dom.CSSName(name), value)
}

// Get returns a property value by CSS or script name.
func (s *Style) Get(name string) string {
	if !strings.HasPrefix(name, "-") {
		name = dom.CSSName(name)
	}
	for _, d := range s.decls {
		if d.name == name {
			return d.value
		}
	}
	return ""
}

// Len returns the number of declarations.
func (s *Style) Len() int {
	return len(s.decls)
}

func (s *Style) parse(text string) {
	s.decls = nil
	for _, part := range strings.Split(text, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		s.put(name, value)
	}
}

func (s *Style) put(name, value string) {
	for i := range s.decls {
		if s.decls[i].name == name {
			s.decls[i].value = value
			return
		}
	}
	s.decls = append(s.decls, declaration{name: name, value: value})
}

func (s *Style) remove(name string) {
	for i, d := range s.decls {
		if d.name == name {
			s.decls = append(s.decls[:i], s.decls[i+1:]...)
			return
		}
	}
}

func (s *Style) sync() {
	if s.owner == nil {
		return
	}
	if len(s.decls) == 0 {
		s.owner.removeAttr("style")
		return
	}
	s.owner.setAttr("style", s.CSSText())
}
