package kuma

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// extractResponse walks a decoded Socket.IO ack payload using an
// RFC 6901-flavored JSON pointer. Kuma's ack callbacks always resolve as
// response[0][0] (outer ack array, single argument), and from there a
// pointer like "/monitor/id" descends through nested maps and arrays to
// the value the caller actually wants.
func extractResponse(payload any, pointer string) (any, error) {
	if pointer == "" || pointer == "/" {
		return payload, nil
	}
	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	cur := payload
	for _, raw := range parts {
		part := unescapeToken(raw)
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[part]
			if !ok {
				return nil, errors.Errorf("pointer %q: key %q not found", pointer, part)
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, errors.Errorf("pointer %q: index %q out of range", pointer, part)
			}
			cur = v[idx]
		default:
			return nil, errors.Errorf("pointer %q: cannot descend into %T", pointer, cur)
		}
	}
	return cur, nil
}

func unescapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}
