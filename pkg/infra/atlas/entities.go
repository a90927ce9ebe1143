package atlas

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
)

const (
	defaultEntityListLimit   = 100
	defaultCheckinTaskLimit  = 10
	defaultCheckinStatusMask = "pending,acknowledged"
)

// ListEntities lists registered entities with pagination
func (c *Client) ListEntities(ctx context.Context, opts model.ListOptions) ([]model.Entity, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultEntityListLimit
	}
	query := url.Values{
		"limit":  {strconv.Itoa(opts.Limit)},
		"offset": {strconv.Itoa(opts.Offset)},
	}

	var entities []model.Entity
	if err := c.do(ctx, http.MethodGet, "/entities", query, nil, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

// GetEntity fetches a single entity by ID
func (c *Client) GetEntity(ctx context.Context, id types.EntityID) (*model.Entity, error) {
	var entity model.Entity
	if err := c.do(ctx, http.MethodGet, "/entities/"+url.PathEscape(id.String()), nil, nil, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetEntityByAlias fetches a single entity by its human-readable alias
func (c *Client) GetEntityByAlias(ctx context.Context, alias string) (*model.Entity, error) {
	var entity model.Entity
	if err := c.do(ctx, http.MethodGet, "/entities/alias/"+url.PathEscape(alias), nil, nil, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// CreateEntity registers a new entity
func (c *Client) CreateEntity(ctx context.Context, req *model.CreateEntityRequest) (*model.Entity, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var entity model.Entity
	if err := c.do(ctx, http.MethodPost, "/entities", nil, req, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// UpdateEntity applies a partial update to an entity
func (c *Client) UpdateEntity(ctx context.Context, id types.EntityID, req *model.UpdateEntityRequest) (*model.Entity, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var entity model.Entity
	if err := c.do(ctx, http.MethodPatch, "/entities/"+url.PathEscape(id.String()), nil, req, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// DeleteEntity removes an entity
func (c *Client) DeleteEntity(ctx context.Context, id types.EntityID) error {
	return c.do(ctx, http.MethodDelete, "/entities/"+url.PathEscape(id.String()), nil, nil, nil)
}

// CheckinEntity reports telemetry and status in a single round trip. The
// server responds with tasks waiting for the entity, filtered by opts.
func (c *Client) CheckinEntity(ctx context.Context, id types.EntityID, req *model.CheckinRequest, opts model.CheckinOptions) (*model.CheckinResult, error) {
	if req == nil {
		req = &model.CheckinRequest{}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if opts.StatusFilter == "" {
		opts.StatusFilter = defaultCheckinStatusMask
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultCheckinTaskLimit
	}
	query := url.Values{
		"status_filter": {opts.StatusFilter},
		"limit":         {strconv.Itoa(opts.Limit)},
	}
	if opts.Since != "" {
		query.Set("since", opts.Since)
	}
	if opts.Fields != "" {
		query.Set("fields", opts.Fields)
	}

	var result model.CheckinResult
	if err := c.do(ctx, http.MethodPost, "/entities/"+url.PathEscape(id.String())+"/checkin", query, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateEntityTelemetry patches only the telemetry component of an entity
func (c *Client) UpdateEntityTelemetry(ctx context.Context, id types.EntityID, telemetry *model.TelemetryComponent) (*model.Entity, error) {
	if telemetry == nil {
		telemetry = &model.TelemetryComponent{}
	}
	if err := telemetry.Validate(); err != nil {
		return nil, err
	}

	var entity model.Entity
	if err := c.do(ctx, http.MethodPatch, "/entities/"+url.PathEscape(id.String())+"/telemetry", nil, telemetry, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}
