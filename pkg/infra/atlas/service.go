package atlas

import (
	"context"
	"net/http"

	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
)

// Root returns service identification from the API root endpoint
func (c *Client) Root(ctx context.Context) (*model.ServiceInfo, error) {
	var info model.ServiceInfo
	if err := c.do(ctx, http.MethodGet, "/", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Health returns the liveness state of the service
func (c *Client) Health(ctx context.Context) (*model.HealthStatus, error) {
	var status model.HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Readiness returns the readiness state of the service
func (c *Client) Readiness(ctx context.Context) (*model.ReadinessStatus, error) {
	var status model.ReadinessStatus
	if err := c.do(ctx, http.MethodGet, "/readiness", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
