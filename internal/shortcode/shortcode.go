// Package shortcode expands self-closing [tag attr="value"] directives in
// page content.
package shortcode

import (
	"regexp"
	"sort"
	"strings"
)

// ColorGridTag is the directive replaced by the global color grid.
const ColorGridTag = "gp_global_color_grid"

// Handler produces the replacement text for one directive occurrence.
type Handler func(attrs map[string]string) string

var (
	tagPattern  = regexp.MustCompile(`\[(\[?)([A-Za-z0-9_-]+)(\s[^\[\]]*)?\](\]?)`)
	attrPattern = regexp.MustCompile(`([\w-]+)\s*=\s*"([^"]*)"|([\w-]+)\s*=\s*'([^']*)'|([\w-]+)\s*=\s*([^\s'"]+)`)
)

// Registry maps directive names to handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds tag to h, replacing any previous handler.
func (r *Registry) Register(tag string, h Handler) {
	r.handlers[strings.ToLower(tag)] = h
}

// Tags returns the registered directive names in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.handlers))
	for tag := range r.handlers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Expand replaces every registered directive in content. Unknown directives
// are left as written, and a doubled [[tag]] is unescaped to a literal [tag].
func (r *Registry) Expand(content string) string {
	if !strings.Contains(content, "[") {
		return content
	}

	return tagPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := tagPattern.FindStringSubmatch(match)
		open, name, rawAttrs, closing := m[1], m[2], m[3], m[4]

		h, ok := r.handlers[strings.ToLower(name)]
		if !ok {
			return match
		}
		if open == "[" && closing == "]" {
			return match[1 : len(match)-1]
		}
		return open + h(ParseAttrs(rawAttrs)) + closing
	})
}

// ParseAttrs parses name="value", name='value' and name=value pairs.
// Names are lowercased.
func ParseAttrs(raw string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(raw, -1) {
		switch {
		case m[1] != "":
			attrs[strings.ToLower(m[1])] = m[2]
		case m[3] != "":
			attrs[strings.ToLower(m[3])] = m[4]
		case m[5] != "":
			attrs[strings.ToLower(m[5])] = m[6]
		}
	}
	return attrs
}
