package kuma

import (
	"context"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/pkg/errors"
)

func (c *Client) GetDockerHosts(ctx context.Context) ([]*model.DockerHost, error) {
	payload, err := c.call(ctx, "getDockerHostList", "/dockerHosts")
	if err != nil {
		return nil, errors.Wrap(err, "get docker hosts")
	}
	return decodeSlice[*model.DockerHost](payload)
}

func (c *Client) AddDockerHost(ctx context.Context, h *model.DockerHost) (int64, error) {
	payload, err := c.call(ctx, "addDockerHost", "/id", h)
	if err != nil {
		return 0, errors.Wrap(err, "add docker host")
	}
	return asInt64(payload)
}

func (c *Client) EditDockerHost(ctx context.Context, id int64, h *model.DockerHost) error {
	withID := *h
	withID.ID = &id
	_, err := c.call(ctx, "addDockerHost", "/id", &withID)
	return errors.Wrap(err, "edit docker host")
}

func (c *Client) DeleteDockerHost(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "deleteDockerHost", "/", id)
	return errors.Wrap(err, "delete docker host")
}
