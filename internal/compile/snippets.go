package compile

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// expandSnippets applies every "__<snippet>.<id>" source against
// registry, the process-level snippet template registry populated from
// configuration at startup, merging the resulting fields into out.
// Sources that don't carry the "__" prefix are returned unchanged so the
// caller can run the regular dotted-prefix grouping pass over them.
//
// A snippet application's value is a JSON array of arguments (without
// its enclosing brackets, e.g. `"Svc", "https://svc"`); the named
// template is rendered with that array bound as .args, and the rendered
// text is parsed line-by-line as "key: value" pairs that become the
// entity's fields - including "type", which determines the entity's
// subtype the same way the dotted-prefix grammar's <type> segment does.
// A missing snippet, malformed argument array, template error, or a
// render with no "type" line is logged and contributes nothing.
func expandSnippets(sources []Source, registry map[string]string, render TemplateFunc, out map[string]*entityGroup, logger log.Logger) []Source {
	rest := make([]Source, 0, len(sources))

	for _, s := range sources {
		if !strings.HasPrefix(s.Key, "__") {
			rest = append(rest, s)
			continue
		}

		name, id, ok := splitSnippetKey(s.Key)
		if !ok {
			level.Warn(logger).Log("msg", "malformed snippet application key", "key", s.Key)
			continue
		}

		body, ok := registry[name]
		if !ok {
			level.Warn(logger).Log("msg", "unknown snippet", "snippet", name, "key", s.Key)
			continue
		}

		var args []any
		if err := json.Unmarshal([]byte("["+s.Value+"]"), &args); err != nil {
			level.Warn(logger).Log("msg", "malformed snippet arguments", "snippet", name, "key", s.Key, "err", err)
			continue
		}

		rendered, err := render(body, map[string]any{"args": args})
		if err != nil {
			level.Warn(logger).Log("msg", "rendering snippet", "snippet", name, "key", s.Key, "err", err)
			continue
		}

		fields, typ, ok := parseSnippetOutput(rendered, logger)
		if !ok {
			level.Warn(logger).Log("msg", "snippet produced no usable fields", "snippet", name, "key", s.Key)
			continue
		}
		mergeGroup(out, id, typ, fields)
	}

	return rest
}

// splitSnippetKey splits a "__<snippet>.<id>" key into its snippet name
// and entity id.
func splitSnippetKey(key string) (name, id string, ok bool) {
	rem := strings.TrimPrefix(key, "__")
	parts := strings.SplitN(rem, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// parseSnippetOutput parses a rendered snippet body as "key: value"
// lines, skipping blank lines and any line without a colon. The "type"
// line is required - it is what determines the synthesized entity's
// subtype - and its absence fails the whole snippet application.
func parseSnippetOutput(rendered string, logger log.Logger) (map[string]any, string, bool) {
	fields := map[string]any{}
	for _, line := range strings.Split(rendered, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			level.Warn(logger).Log("msg", "skipping malformed snippet output line", "line", line)
			continue
		}
		key := strings.TrimSpace(line[:idx])
		fields[key] = unescape(strings.TrimSpace(line[idx+1:]))
	}
	typ, _ := fields["type"].(string)
	if typ == "" {
		return nil, "", false
	}
	return fields, typ, true
}

// unescape decodes standard backslash escape sequences (\n, \t, \", ...)
// in a snippet output value, which is plain text rather than JSON.
func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	unquoted, err := strconv.Unquote(`"` + s + `"`)
	if err != nil {
		return s
	}
	return unquoted
}
