package compile

import "strings"

// entityGroup accumulates every field assigned to one (entity id, entity
// subtype) pair before defaults, templating and validation run. id is the
// stable entity name; typ is the raw subtype token from the label
// ("http", "group", "notification", "docker_host", ...).
type entityGroup struct {
	id     string
	typ    string
	fields map[string]any
}

func groupKey(id, typ string) string { return id + "\x00" + typ }

// mergeGroup assigns fields into the (id, typ) entityGroup in out,
// creating it if necessary. Both the dotted-prefix grouping pass and
// snippet expansion feed into the same map, so a snippet-produced entity
// can be topped up by literal labels for the same id/type and vice versa.
func mergeGroup(out map[string]*entityGroup, id, typ string, fields map[string]any) {
	key := groupKey(id, typ)
	g, ok := out[key]
	if !ok {
		g = &entityGroup{id: id, typ: typ, fields: map[string]any{}}
		out[key] = g
	}
	for k, v := range fields {
		g.fields[k] = v
	}
}

// group parses each literal (non-snippet) source key of the form
// "<id>.<type>.<field>" - AutoKuma's label convention, e.g.
// "my-site.http.url" - and merges the field into the corresponding
// entityGroup in out. Keys that don't split into at least three dotted
// segments are ignored.
func group(sources []Source, out map[string]*entityGroup) {
	for _, s := range sources {
		parts := strings.SplitN(s.Key, ".", 3)
		if len(parts) < 3 {
			continue
		}
		id, typ, field := parts[0], parts[1], parts[2]
		mergeGroup(out, id, typ, map[string]any{field: s.Value})
	}
}

// entityKind maps a group's raw subtype token onto the Entity's
// EntityType. "notification" and "docker_host" are literal tokens;
// anything else is assumed to be a model.Monitor subtype (http, ping,
// group, ...).
func entityKind(typ string) string {
	switch typ {
	case "notification":
		return "notification"
	case "docker_host":
		return "docker_host"
	default:
		return "monitor"
	}
}
