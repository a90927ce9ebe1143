package model

import "github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"

// DeletedEntity is a tombstone for an entity removed since a sync cursor
type DeletedEntity struct {
	EntityID  types.EntityID `json:"entity_id"`
	DeletedAt *string        `json:"deleted_at"`
}

// DeletedTask is a tombstone for a removed task
type DeletedTask struct {
	TaskID    types.TaskID `json:"task_id"`
	DeletedAt *string      `json:"deleted_at"`
}

// DeletedObject is a tombstone for a removed object
type DeletedObject struct {
	ObjectID  types.ObjectID `json:"object_id"`
	DeletedAt *string        `json:"deleted_at"`
}

// ChangeSet is the response of the changed-since query: everything created or
// updated after the cursor, plus tombstones for deletions.
type ChangeSet struct {
	Entities []Entity       `json:"entities,omitempty"`
	Tasks    []Task         `json:"tasks,omitempty"`
	Objects  []StoredObject `json:"objects,omitempty"`

	DeletedEntities []DeletedEntity `json:"deleted_entities,omitempty"`
	DeletedTasks    []DeletedTask   `json:"deleted_tasks,omitempty"`
	DeletedObjects  []DeletedObject `json:"deleted_objects,omitempty"`
}

// IsEmpty reports whether the change set carries no changes at all
func (x *ChangeSet) IsEmpty() bool {
	return len(x.Entities) == 0 && len(x.Tasks) == 0 && len(x.Objects) == 0 &&
		len(x.DeletedEntities) == 0 && len(x.DeletedTasks) == 0 && len(x.DeletedObjects) == 0
}

// Dataset is a full snapshot of the server state
type Dataset struct {
	Entities []Entity       `json:"entities,omitempty"`
	Tasks    []Task         `json:"tasks,omitempty"`
	Objects  []StoredObject `json:"objects,omitempty"`
}

// DatasetOptions limit the size of a full dataset query per record type.
// Zero means server default.
type DatasetOptions struct {
	EntityLimit int
	TaskLimit   int
	ObjectLimit int
}

// ChangeSummary describes what a sync round applied to the local snapshot
type ChangeSummary struct {
	Since string
	Next  string

	EntitiesUpserted int
	TasksUpserted    int
	ObjectsUpserted  int
	EntitiesRemoved  int
	TasksRemoved     int
	ObjectsRemoved   int
}

// Total is the number of applied changes in this round
func (x ChangeSummary) Total() int {
	return x.EntitiesUpserted + x.TasksUpserted + x.ObjectsUpserted +
		x.EntitiesRemoved + x.TasksRemoved + x.ObjectsRemoved
}
