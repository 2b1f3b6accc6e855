package compile

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// NewRenderer returns the default TemplateFunc: a text/template renderer
// with sprig's function library plus a get_env helper exposing process
// environment variables to field values, e.g.
// "{{ get_env \"SITE_URL\" \"https://example.com\" }}". get_env reads
// any variable of the process environment; it has no name-prefix
// allowlist and is not gated by a configuration flag.
func NewRenderer() TemplateFunc {
	funcs := sprig.TxtFuncMap()
	funcs["get_env"] = func(name string, fallback ...string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if len(fallback) > 0 {
			return fallback[0]
		}
		return ""
	}

	return func(body string, args map[string]any) (string, error) {
		tmpl, err := template.New("field").Funcs(funcs).Parse(body)
		if err != nil {
			return "", fmt.Errorf("parsing template: %w", err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, args); err != nil {
			return "", fmt.Errorf("executing template: %w", err)
		}
		return buf.String(), nil
	}
}

// RenderFields renders every string field value in fields as a template
// with no bound args, for sources (like cluster CRDs) whose fields
// arrive pre-grouped and only need the final template expansion pass.
func RenderFields(fields map[string]any, render TemplateFunc) (map[string]any, error) {
	return renderFieldValues(fields, map[string]any{}, render)
}

// renderFieldValues renders every string field value in fields as a
// template against args (both callers pass an empty map), leaving
// non-string values untouched.
func renderFieldValues(fields map[string]any, args map[string]any, render TemplateFunc) (map[string]any, error) {
	out := map[string]any{}
	for k, v := range fields {
		s, ok := v.(string)
		if !ok {
			out[k] = v
			continue
		}
		rendered, err := render(s, args)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = rendered
	}
	return out, nil
}
