package kuma

import (
	"context"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/pkg/errors"
)

// GetTags returns every tag definition (not assignment) known to Kuma.
func (c *Client) GetTags(ctx context.Context) ([]model.Tag, error) {
	payload, err := c.call(ctx, "getTags", "/tags")
	if err != nil {
		return nil, errors.Wrap(err, "get tags")
	}
	return decodeSlice[model.Tag](payload)
}

func (c *Client) AddTag(ctx context.Context, t model.Tag) (int64, error) {
	payload, err := c.call(ctx, "addTag", "/tag/id", t)
	if err != nil {
		return 0, errors.Wrap(err, "add tag")
	}
	return asInt64(payload)
}

func (c *Client) DeleteTag(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "deleteTag", "/", id)
	return errors.Wrap(err, "delete tag")
}

// EnsureTag looks up a tag definition by name, creating it with the
// given color if it doesn't exist yet. This backs the marker tag every
// managed entity carries.
func (c *Client) EnsureTag(ctx context.Context, name, color string) (int64, error) {
	tags, err := c.GetTags(ctx)
	if err != nil {
		return 0, err
	}
	for _, t := range tags {
		if t.Name == name && t.ID != nil {
			return *t.ID, nil
		}
	}
	return c.AddTag(ctx, model.Tag{Name: name, Color: color})
}

func decodeSlice[T any](payload any) ([]T, error) {
	arr, ok := payload.([]any)
	if !ok {
		return nil, errors.Errorf("expected array, got %T", payload)
	}
	out := make([]T, 0, len(arr))
	for _, item := range arr {
		var v T
		if err := remarshal(item, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
