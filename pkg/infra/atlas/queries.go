package atlas

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
)

// ChangedSince returns every record created, updated or deleted after the
// cursor. limitPerType of 0 leaves the cap to the server.
func (c *Client) ChangedSince(ctx context.Context, since time.Time, limitPerType int) (*model.ChangeSet, error) {
	query := url.Values{
		"since": {since.UTC().Format(time.RFC3339)},
	}
	if limitPerType > 0 {
		query.Set("limit_per_type", strconv.Itoa(limitPerType))
	}

	var changes model.ChangeSet
	if err := c.do(ctx, http.MethodGet, "/queries/changed-since", query, nil, &changes); err != nil {
		return nil, err
	}
	return &changes, nil
}

// FullDataset returns a complete snapshot of entities, tasks and objects
func (c *Client) FullDataset(ctx context.Context, opts model.DatasetOptions) (*model.Dataset, error) {
	query := url.Values{}
	if opts.EntityLimit > 0 {
		query.Set("entity_limit", strconv.Itoa(opts.EntityLimit))
	}
	if opts.TaskLimit > 0 {
		query.Set("task_limit", strconv.Itoa(opts.TaskLimit))
	}
	if opts.ObjectLimit > 0 {
		query.Set("object_limit", strconv.Itoa(opts.ObjectLimit))
	}

	var dataset model.Dataset
	if err := c.do(ctx, http.MethodGet, "/queries/full", query, nil, &dataset); err != nil {
		return nil, err
	}
	return &dataset, nil
}
