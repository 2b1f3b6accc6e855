package kuma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/pkg/errors"
)

// GetStatusPages lists every status page, read from the statusPageList
// push-cache that Kuma streams on connect (the same cache readiness
// waits on). The full monitor grouping for a given page is only
// available over its public HTTP endpoint, so that part still falls
// back to plain HTTP - matching kuma-client's own fallback for
// publicGroupList.
func (c *Client) GetStatusPages(ctx context.Context) ([]*model.StatusPage, error) {
	c.ready.mu.RLock()
	slugs := make([]string, 0, len(c.ready.statusPages))
	for slug := range c.ready.statusPages {
		slugs = append(slugs, slug)
	}
	c.ready.mu.RUnlock()

	pages := make([]*model.StatusPage, 0, len(slugs))
	for _, slug := range slugs {
		page, err := c.getStatusPageDetail(ctx, slug)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (c *Client) getStatusPageDetail(ctx context.Context, slug string) (*model.StatusPage, error) {
	payload, err := c.call(ctx, "getStatusPage", "/config", slug)
	if err != nil {
		return nil, errors.Wrapf(err, "get status page %q", slug)
	}
	var page model.StatusPage
	if err := remarshal(payload, &page); err != nil {
		return nil, err
	}
	page.Slug = slug

	groups, err := c.fetchPublicGroupList(ctx, slug)
	if err != nil {
		return nil, err
	}
	page.Groups = groups
	return &page, nil
}

// fetchPublicGroupList retrieves the monitor grouping for a status page
// over HTTP, since it is not part of the Socket.IO push/call surface.
func (c *Client) fetchPublicGroupList(ctx context.Context, slug string) ([]model.StatusPageGroup, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/status-page/%s", c.url, slug), nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching public group list")
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		PublicGroupList []model.StatusPageGroup `json:"publicGroupList"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, "decoding public group list")
	}
	return parsed.PublicGroupList, nil
}

func (c *Client) AddStatusPage(ctx context.Context, p *model.StatusPage) error {
	if _, err := c.call(ctx, "addStatusPage", "/", p.Title, p.Slug); err != nil {
		return errors.Wrap(err, "add status page")
	}
	return c.saveStatusPage(ctx, p)
}

func (c *Client) EditStatusPage(ctx context.Context, p *model.StatusPage) error {
	return c.saveStatusPage(ctx, p)
}

func (c *Client) saveStatusPage(ctx context.Context, p *model.StatusPage) error {
	_, err := c.call(ctx, "saveStatusPage", "/", p.Slug, p, p.Groups)
	return errors.Wrap(err, "save status page")
}

func (c *Client) DeleteStatusPage(ctx context.Context, slug string) error {
	_, err := c.call(ctx, "deleteStatusPage", "/", slug)
	return errors.Wrap(err, "delete status page")
}
