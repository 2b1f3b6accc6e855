package kuma

import "encoding/json"

// remarshal round-trips v through JSON, used to convert the generic
// any-typed payloads Socket.IO acks decode into (maps, slices) into the
// concrete model types this package exposes.
func remarshal(v any, out any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
