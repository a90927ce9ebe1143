package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
)

// Entity is an asset tracked by Atlas Command. Components on responses stay
// schemaless since the server may attach custom components.
type Entity struct {
	EntityID   types.EntityID `json:"entity_id"`
	EntityType string         `json:"entity_type"`
	Alias      string         `json:"alias"`
	Subtype    string         `json:"subtype"`
	Components map[string]any `json:"components,omitempty"`
	CreatedAt  *string        `json:"created_at,omitempty"`
	UpdatedAt  *string        `json:"updated_at,omitempty"`
}

// CreateEntityRequest is the payload for registering a new entity
type CreateEntityRequest struct {
	EntityID   types.EntityID    `json:"entity_id"`
	EntityType string            `json:"entity_type"`
	Alias      string            `json:"alias"`
	Subtype    string            `json:"subtype"`
	Components *EntityComponents `json:"components"`
}

func (x *CreateEntityRequest) Validate() error {
	if x.EntityID == "" {
		return goerr.New("entity_id must not be empty")
	}
	if x.EntityType == "" {
		return goerr.New("entity_type must not be empty")
	}
	if x.Components != nil {
		return x.Components.Validate()
	}
	return nil
}

// UpdateEntityRequest is a partial update. At least one field must be set.
type UpdateEntityRequest struct {
	Components *EntityComponents `json:"components,omitempty"`
	Subtype    *string           `json:"subtype,omitempty"`
}

func (x *UpdateEntityRequest) Validate() error {
	if x.Components == nil && x.Subtype == nil {
		return goerr.New("entity update requires at least one of: components, subtype")
	}
	if x.Components != nil {
		return x.Components.Validate()
	}
	return nil
}

// CheckinRequest reports current telemetry and status in a single round trip.
// The server responds with tasks waiting for the entity.
type CheckinRequest struct {
	Status *string `json:"status,omitempty"`
	TelemetryComponent
}

func (x *CheckinRequest) Validate() error {
	return x.TelemetryComponent.Validate()
}

// CheckinOptions control which tasks the server piggybacks on a checkin
type CheckinOptions struct {
	StatusFilter string // defaults to "pending,acknowledged"
	Limit        int    // defaults to 10
	Since        string
	Fields       string
}

// CheckinResult is the server response to a checkin
type CheckinResult struct {
	Entity *Entity `json:"entity,omitempty"`
	Tasks  []Task  `json:"tasks,omitempty"`
}

// ListOptions is shared pagination for list endpoints
type ListOptions struct {
	Limit  int
	Offset int
}
