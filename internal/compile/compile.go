// Package compile implements the entity compiler pipeline: turning the
// raw key/value configuration AutoKuma collects from container labels or
// static files into typed entity definitions. The pipeline runs, in
// order: snippet expansion ("__<snippet>.<id>" keys, resolved against a
// process-level registry), dotted-prefix grouping ("<id>.<type>.<field>")
// into one bag of fields per entity, default merging, Go template
// expansion, and finally TOML decoding of each entity's assembled field
// bag.
package compile

import (
	"sort"
	"strings"

	"github.com/go-kit/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Source is one raw key/value pair as collected from a label or a line
// in a static config file, e.g. key "my-site.http.url" (a field) or
// "__http.svc" (a snippet application, value-encoded as a JSON argument
// array).
type Source struct {
	Key   string
	Value string
}

// Entity is one fully compiled entity: its type ("monitor", "notification",
// "docker_host") and stable id, plus the decoded field bag ready to be
// converted into a model.Monitor/Notification/DockerHost.
type Entity struct {
	EntityType string
	ID         string
	Fields     map[string]any
}

// Defaults supplies the wildcard ("*") and per-type default field bags
// merged in beneath every entity's own fields.
type Defaults struct {
	// Wildcard applies to every entity type.
	Wildcard map[string]any
	// ByType applies only to entities of that EntityType.
	ByType map[string]map[string]any
}

// TemplateFunc renders a Go text/template (with sprig functions plus
// get_env) against args, used both for snippet bodies and for the final
// per-entity field bag.
type TemplateFunc func(body string, args map[string]any) (string, error)

// Compile runs the full pipeline over a flat list of raw sources and
// returns one Entity per distinct (id, type) pair found. snippets is the
// process-level snippet registry (name -> template body), populated from
// configuration; it is read-only here. logger receives warnings for
// recoverable problems (unknown snippet, malformed arguments, ...) that
// the spec requires compiling to tolerate rather than fail on.
func Compile(sources []Source, defaults Defaults, snippets map[string]string, render TemplateFunc, logger log.Logger) ([]Entity, error) {
	grouped := map[string]*entityGroup{}

	rest := expandSnippets(sources, snippets, render, grouped, logger)
	group(rest, grouped)

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entities := make([]Entity, 0, len(grouped))
	for _, key := range keys {
		g := grouped[key]

		merged := map[string]any{}
		for k, v := range defaults.Wildcard {
			merged[k] = v
		}
		for k, v := range defaults.ByType[g.typ] {
			merged[k] = v
		}
		for k, v := range g.fields {
			merged[k] = v
		}
		// For monitors the subtype token is the type; notifications keep
		// their own "type" field as the provider type.
		if entityKind(g.typ) == "monitor" {
			merged["type"] = g.typ
		}

		rendered, err := renderFieldValues(merged, map[string]any{}, render)
		if err != nil {
			return nil, errors.Wrapf(err, "entity %q", g.id)
		}

		decoded, err := decodeFields(rendered)
		if err != nil {
			return nil, errors.Wrapf(err, "entity %q", g.id)
		}

		entities = append(entities, Entity{EntityType: entityKind(g.typ), ID: g.id, Fields: decoded})
	}

	return entities, nil
}

// decodeFields tries to TOML-decode every non-empty string field value
// as the right-hand side of "<key> = <value>", so that, e.g., a label
// value of `["200-299"]` for accepted_statuscodes becomes a real string
// slice and `60` becomes an integer. Values that are not valid TOML
// (such as a bare URL) are kept as the raw string.
func decodeFields(fields map[string]any) (map[string]any, error) {
	out := map[string]any{}
	for k, v := range fields {
		s, ok := v.(string)
		if !ok {
			out[k] = v
			continue
		}
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			out[k] = s
			continue
		}
		line := k + " = " + trimmed
		var wrapper map[string]any
		if err := toml.Unmarshal([]byte(line), &wrapper); err == nil {
			if dv, ok := wrapper[k]; ok {
				out[k] = dv
				continue
			}
		}
		out[k] = s
	}
	return out, nil
}
