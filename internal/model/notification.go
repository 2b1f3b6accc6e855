package model

import "encoding/json"

// Notification mirrors kuma-client's notification model: a provider type
// discriminator ("config.type" in Kuma's own JSON shape) plus a
// provider-specific config bag, matching AutoKuma's add_notification /
// edit_notification merge-and-promote behavior where unknown config keys
// are preserved across edits instead of being clobbered.
type Notification struct {
	ID         *int64         `json:"id,omitempty"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	IsDefault  bool           `json:"isDefault"`
	Config     map[string]any `json:"-"`
}

func NewNotification(typ, name string) *Notification {
	return &Notification{Type: typ, Name: name, Config: map[string]any{}}
}

// MarshalJSON produces the flat object addNotification takes: the
// provider config keys promoted to the top level alongside "name",
// "type" and "isDefault" (and "id" when set). UnmarshalJSON reads the
// other shape, the one notificationList pushes: a "config" field holding
// that object as a JSON-encoded string.
func (n Notification) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	for k, v := range n.Config {
		out[k] = v
	}
	out["name"] = n.Name
	out["type"] = n.Type
	out["isDefault"] = n.IsDefault
	if n.ID != nil {
		out["id"] = *n.ID
	}
	return json.Marshal(out)
}

func (n *Notification) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID        *int64 `json:"id,omitempty"`
		Name      string `json:"name"`
		IsDefault bool   `json:"isDefault"`
		Config    string `json:"config"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	n.ID = wire.ID
	n.Name = wire.Name
	n.IsDefault = wire.IsDefault
	n.Config = map[string]any{}
	if wire.Config != "" {
		if err := json.Unmarshal([]byte(wire.Config), &n.Config); err != nil {
			return err
		}
	}
	if t, ok := n.Config["type"].(string); ok {
		n.Type = t
		delete(n.Config, "type")
	}
	delete(n.Config, "name")
	delete(n.Config, "isDefault")
	return nil
}

// Equal compares notifications for reconciliation, ignoring IsDefault
// (a user-togglable preference AutoKuma never manages).
func (n *Notification) Equal(other *Notification) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Name != other.Name || n.Type != other.Type {
		return false
	}
	return deepEqualJSON(n.Config, other.Config)
}
