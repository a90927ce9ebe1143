package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
)

// CustomFieldPrefix is required for any component or parameter key that is not
// part of the documented schema. The API rejects other unknown keys.
const CustomFieldPrefix = "custom_"

// GeometryType is a GeoJSON geometry type accepted for geoentities
type GeometryType string

const (
	GeometryPoint      GeometryType = "Point"
	GeometryLineString GeometryType = "LineString"
	GeometryPolygon    GeometryType = "Polygon"
)

// MediaRole describes how a media object relates to an entity
type MediaRole string

const (
	MediaRoleCameraFeed  MediaRole = "camera_feed"
	MediaRoleThumbnail   MediaRole = "thumbnail"
	MediaRoleHeatmapData MediaRole = "heatmap_data"
)

// MilClassification is the tactical classification of an entity
type MilClassification string

const (
	ClassificationFriendly MilClassification = "friendly"
	ClassificationHostile  MilClassification = "hostile"
	ClassificationNeutral  MilClassification = "neutral"
	ClassificationUnknown  MilClassification = "unknown"
	ClassificationCivilian MilClassification = "civilian"
)

// LinkState describes the network link status of an entity
type LinkState string

const (
	LinkStateConnected    LinkState = "connected"
	LinkStateDisconnected LinkState = "disconnected"
	LinkStateDegraded     LinkState = "degraded"
	LinkStateUnknown      LinkState = "unknown"
)

// checkTimestamp validates an optional RFC 3339 timestamp string
func checkTimestamp(field string, value *string) error {
	if value == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, *value); err != nil {
		// Accept timestamps without a timezone designator as well
		if _, err2 := time.Parse("2006-01-02T15:04:05", *value); err2 != nil {
			return goerr.New("must be a valid RFC 3339 timestamp",
				goerr.V("field", field), goerr.V("value", *value))
		}
	}
	return nil
}

// validateCustomKeys ensures every extension key carries the custom_ prefix
func validateCustomKeys(custom map[string]any) error {
	for key := range custom {
		if !strings.HasPrefix(key, CustomFieldPrefix) {
			return goerr.New("unknown field, custom fields must be prefixed with 'custom_'",
				goerr.V("field", key))
		}
	}
	return nil
}

// marshalWithCustom serializes v and merges extension fields into the result.
// Schema fields take precedence over colliding custom keys.
func marshalWithCustom(v any, custom map[string]any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(custom) == 0 {
		return raw, nil
	}

	var merged map[string]any
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	for key, value := range custom {
		if _, exists := merged[key]; !exists {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// TelemetryComponent carries position and motion data for an entity
type TelemetryComponent struct {
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	AltitudeM  *float64 `json:"altitude_m,omitempty"`
	SpeedMS    *float64 `json:"speed_m_s,omitempty"`
	HeadingDeg *float64 `json:"heading_deg,omitempty"`
}

func (x *TelemetryComponent) Validate() error {
	if x.Latitude != nil && (*x.Latitude < -90 || *x.Latitude > 90) {
		return goerr.New("latitude must be between -90 and 90", goerr.V("latitude", *x.Latitude))
	}
	if x.Longitude != nil && (*x.Longitude < -180 || *x.Longitude > 180) {
		return goerr.New("longitude must be between -180 and 180", goerr.V("longitude", *x.Longitude))
	}
	if x.SpeedMS != nil && *x.SpeedMS < 0 {
		return goerr.New("speed_m_s must be non-negative", goerr.V("speed_m_s", *x.SpeedMS))
	}
	if x.HeadingDeg != nil && (*x.HeadingDeg < 0 || *x.HeadingDeg >= 360) {
		return goerr.New("heading_deg must be between 0 (inclusive) and 360 (exclusive)",
			goerr.V("heading_deg", *x.HeadingDeg))
	}
	return nil
}

// GeometryComponent is a GeoJSON geometry for geoentities. Coordinates keep
// their raw JSON form since nesting depth depends on the geometry type.
type GeometryComponent struct {
	Type        GeometryType    `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

func (x *GeometryComponent) Validate() error {
	switch x.Type {
	case GeometryPoint, GeometryLineString, GeometryPolygon:
	default:
		return goerr.New("geometry type must be Point, LineString or Polygon",
			goerr.V("type", x.Type))
	}
	if len(x.Coordinates) == 0 {
		return goerr.New("geometry coordinates are required")
	}
	return nil
}

// TaskCatalogComponent lists supported task identifiers for an asset
type TaskCatalogComponent struct {
	SupportedTasks []string `json:"supported_tasks"`
}

// MediaRefItem references a media object attached to an entity
type MediaRefItem struct {
	ObjectID types.ObjectID `json:"object_id"`
	Role     MediaRole      `json:"role"`
}

func (x *MediaRefItem) Validate() error {
	if x.ObjectID == "" {
		return goerr.New("media ref object_id must not be empty")
	}
	switch x.Role {
	case MediaRoleCameraFeed, MediaRoleThumbnail, MediaRoleHeatmapData:
		return nil
	default:
		return goerr.New("media ref role must be camera_feed, thumbnail or heatmap_data",
			goerr.V("role", x.Role))
	}
}

// MilViewComponent carries the tactical classification of an entity
type MilViewComponent struct {
	Classification MilClassification `json:"classification"`
	LastSeen       *string           `json:"last_seen,omitempty"`
}

func (x *MilViewComponent) Validate() error {
	switch x.Classification {
	case ClassificationFriendly, ClassificationHostile, ClassificationNeutral,
		ClassificationUnknown, ClassificationCivilian:
	default:
		return goerr.New("invalid mil_view classification", goerr.V("classification", x.Classification))
	}
	return checkTimestamp("last_seen", x.LastSeen)
}

// HealthComponent carries vital statistics for an entity
type HealthComponent struct {
	BatteryPercent *int `json:"battery_percent,omitempty"`
}

func (x *HealthComponent) Validate() error {
	if x.BatteryPercent != nil && (*x.BatteryPercent < 0 || *x.BatteryPercent > 100) {
		return goerr.New("battery_percent must be between 0 and 100",
			goerr.V("battery_percent", *x.BatteryPercent))
	}
	return nil
}

// SensorRefItem references a sensor with FOV and orientation metadata
type SensorRefItem struct {
	SensorID              string   `json:"sensor_id"`
	Type                  string   `json:"type"`
	VerticalFOV           *float64 `json:"vertical_fov,omitempty"`
	HorizontalFOV         *float64 `json:"horizontal_fov,omitempty"`
	VerticalOrientation   *float64 `json:"vertical_orientation,omitempty"`
	HorizontalOrientation *float64 `json:"horizontal_orientation,omitempty"`
}

func (x *SensorRefItem) Validate() error {
	if x.SensorID == "" {
		return goerr.New("sensor ref sensor_id must not be empty")
	}
	return nil
}

// CommunicationsComponent carries network link status
type CommunicationsComponent struct {
	LinkState LinkState `json:"link_state"`
}

func (x *CommunicationsComponent) Validate() error {
	switch x.LinkState {
	case LinkStateConnected, LinkStateDisconnected, LinkStateDegraded, LinkStateUnknown:
		return nil
	default:
		return goerr.New("invalid communications link_state", goerr.V("link_state", x.LinkState))
	}
}

// TaskQueueComponent lists current and queued work for an entity
type TaskQueueComponent struct {
	CurrentTaskID *types.TaskID  `json:"current_task_id,omitempty"`
	QueuedTaskIDs []types.TaskID `json:"queued_task_ids,omitempty"`
}

// StatusComponent is the operational status of an entity
type StatusComponent struct {
	Value      string  `json:"value"`
	LastUpdate *string `json:"last_update,omitempty"`
}

func (x *StatusComponent) Validate() error {
	if x.Value == "" {
		return goerr.New("status value must not be empty")
	}
	return checkTimestamp("last_update", x.LastUpdate)
}

// HeartbeatComponent records the last time an entity was seen alive
type HeartbeatComponent struct {
	LastSeen string `json:"last_seen"`
}

func (x *HeartbeatComponent) Validate() error {
	if x.LastSeen == "" {
		return goerr.New("heartbeat last_seen must not be empty")
	}
	return checkTimestamp("last_seen", &x.LastSeen)
}

// EntityComponents holds every supported entity component. All fields are
// optional; nil fields are omitted on the wire. Extension components go into
// Custom and must use the custom_ prefix.
type EntityComponents struct {
	Telemetry      *TelemetryComponent      `json:"telemetry,omitempty"`
	Geometry       *GeometryComponent       `json:"geometry,omitempty"`
	TaskCatalog    *TaskCatalogComponent    `json:"task_catalog,omitempty"`
	MediaRefs      []MediaRefItem           `json:"media_refs,omitempty"`
	MilView        *MilViewComponent        `json:"mil_view,omitempty"`
	Health         *HealthComponent         `json:"health,omitempty"`
	SensorRefs     []SensorRefItem          `json:"sensor_refs,omitempty"`
	Communications *CommunicationsComponent `json:"communications,omitempty"`
	TaskQueue      *TaskQueueComponent      `json:"task_queue,omitempty"`
	Status         *StatusComponent         `json:"status,omitempty"`
	Heartbeat      *HeartbeatComponent      `json:"heartbeat,omitempty"`

	Custom map[string]any `json:"-"`
}

func (x *EntityComponents) Validate() error {
	validators := []interface{ Validate() error }{}
	if x.Telemetry != nil {
		validators = append(validators, x.Telemetry)
	}
	if x.Geometry != nil {
		validators = append(validators, x.Geometry)
	}
	if x.MilView != nil {
		validators = append(validators, x.MilView)
	}
	if x.Health != nil {
		validators = append(validators, x.Health)
	}
	if x.Communications != nil {
		validators = append(validators, x.Communications)
	}
	if x.Status != nil {
		validators = append(validators, x.Status)
	}
	if x.Heartbeat != nil {
		validators = append(validators, x.Heartbeat)
	}
	for i := range x.MediaRefs {
		validators = append(validators, &x.MediaRefs[i])
	}
	for i := range x.SensorRefs {
		validators = append(validators, &x.SensorRefs[i])
	}

	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return validateCustomKeys(x.Custom)
}

func (x EntityComponents) MarshalJSON() ([]byte, error) {
	type alias EntityComponents
	return marshalWithCustom(alias(x), x.Custom)
}

// CommandComponent identifies the work type of a task
type CommandComponent struct {
	Type string `json:"type"`
}

func (x *CommandComponent) Validate() error {
	if x.Type == "" {
		return goerr.New("command type must not be empty")
	}
	return nil
}

// TaskParametersComponent carries command parameters for task execution
type TaskParametersComponent struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	AltitudeM *float64 `json:"altitude_m,omitempty"`

	Custom map[string]any `json:"-"`
}

func (x *TaskParametersComponent) Validate() error {
	return validateCustomKeys(x.Custom)
}

func (x TaskParametersComponent) MarshalJSON() ([]byte, error) {
	type alias TaskParametersComponent
	return marshalWithCustom(alias(x), x.Custom)
}

// TaskProgressComponent is runtime telemetry about task execution
type TaskProgressComponent struct {
	Percent      *int    `json:"percent,omitempty"`
	UpdatedAt    *string `json:"updated_at,omitempty"`
	StatusDetail *string `json:"status_detail,omitempty"`
}

func (x *TaskProgressComponent) Validate() error {
	if x.Percent != nil && (*x.Percent < 0 || *x.Percent > 100) {
		return goerr.New("progress percent must be between 0 and 100", goerr.V("percent", *x.Percent))
	}
	return checkTimestamp("updated_at", x.UpdatedAt)
}

// TaskComponents holds every supported task component
type TaskComponents struct {
	Command    *CommandComponent        `json:"command,omitempty"`
	Parameters *TaskParametersComponent `json:"parameters,omitempty"`
	Progress   *TaskProgressComponent   `json:"progress,omitempty"`

	Custom map[string]any `json:"-"`
}

func (x *TaskComponents) Validate() error {
	if x.Command != nil {
		if err := x.Command.Validate(); err != nil {
			return err
		}
	}
	if x.Parameters != nil {
		if err := x.Parameters.Validate(); err != nil {
			return err
		}
	}
	if x.Progress != nil {
		if err := x.Progress.Validate(); err != nil {
			return err
		}
	}
	return validateCustomKeys(x.Custom)
}

func (x TaskComponents) MarshalJSON() ([]byte, error) {
	type alias TaskComponents
	return marshalWithCustom(alias(x), x.Custom)
}

// ObjectReferenceItem links a stored object to an entity or task
type ObjectReferenceItem struct {
	EntityID *types.EntityID `json:"entity_id,omitempty"`
	TaskID   *types.TaskID   `json:"task_id,omitempty"`
}

// ObjectMetadata describes a stored object's JSON blob fields
type ObjectMetadata struct {
	Bucket       *string               `json:"bucket,omitempty"`
	SizeBytes    *int64                `json:"size_bytes,omitempty"`
	UsageHints   []string              `json:"usage_hints,omitempty"`
	ReferencedBy []ObjectReferenceItem `json:"referenced_by,omitempty"`
	Checksum     *string               `json:"checksum,omitempty"`
	ExpiryTime   *string               `json:"expiry_time,omitempty"`

	Custom map[string]any `json:"-"`
}

func (x *ObjectMetadata) Validate() error {
	if err := checkTimestamp("expiry_time", x.ExpiryTime); err != nil {
		return err
	}
	return validateCustomKeys(x.Custom)
}

func (x ObjectMetadata) MarshalJSON() ([]byte, error) {
	type alias ObjectMetadata
	return marshalWithCustom(alias(x), x.Custom)
}
