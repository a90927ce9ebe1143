package types

// Version is the version of atlas-asset-client-go
const Version = "0.4.1"

// EntityID identifies an entity tracked by Atlas Command
type EntityID string

// TaskID identifies a task assigned to an entity
type TaskID string

// ObjectID identifies a stored object (media, telemetry dumps, etc.)
type ObjectID string

func (x EntityID) String() string { return string(x) }
func (x TaskID) String() string   { return string(x) }
func (x ObjectID) String() string { return string(x) }
