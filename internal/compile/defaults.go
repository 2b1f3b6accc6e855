package compile

import "strings"

// ParseDefaultSettings parses the newline-delimited "type.field: value"
// list accepted by the default_settings configuration option into a
// Defaults value. A "*" type applies the default to every entity type;
// any other token (a monitor subtype, "notification", "docker_host")
// applies only to that type. Blank lines and lines without a colon are
// skipped.
func ParseDefaultSettings(text string) Defaults {
	d := Defaults{Wildcard: map[string]any{}, ByType: map[string]map[string]any{}}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := unescape(strings.TrimSpace(line[idx+1:]))

		dotIdx := strings.Index(key, ".")
		if dotIdx < 0 {
			continue
		}
		typ, field := key[:dotIdx], key[dotIdx+1:]

		if typ == "*" {
			d.Wildcard[field] = value
			continue
		}
		if d.ByType[typ] == nil {
			d.ByType[typ] = map[string]any{}
		}
		d.ByType[typ][field] = value
	}

	return d
}
