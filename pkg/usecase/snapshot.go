package usecase

import (
	"sync"

	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
)

// Snapshot is an in-memory replica of the server dataset, keyed by record ID.
// It is safe for concurrent use.
type Snapshot struct {
	mu       sync.RWMutex
	entities map[types.EntityID]model.Entity
	tasks    map[types.TaskID]model.Task
	objects  map[types.ObjectID]model.StoredObject
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		entities: map[types.EntityID]model.Entity{},
		tasks:    map[types.TaskID]model.Task{},
		objects:  map[types.ObjectID]model.StoredObject{},
	}
}

// Reset replaces the snapshot with a full dataset
func (s *Snapshot) Reset(dataset *model.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities = make(map[types.EntityID]model.Entity, len(dataset.Entities))
	for _, entity := range dataset.Entities {
		s.entities[entity.EntityID] = entity
	}
	s.tasks = make(map[types.TaskID]model.Task, len(dataset.Tasks))
	for _, task := range dataset.Tasks {
		s.tasks[task.TaskID] = task
	}
	s.objects = make(map[types.ObjectID]model.StoredObject, len(dataset.Objects))
	for _, object := range dataset.Objects {
		s.objects[object.ObjectID] = object
	}
}

// Apply merges a change set into the snapshot. Tombstones win over upserts
// carried in the same change set.
func (s *Snapshot) Apply(changes *model.ChangeSet) model.ChangeSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var summary model.ChangeSummary

	for _, entity := range changes.Entities {
		s.entities[entity.EntityID] = entity
		summary.EntitiesUpserted++
	}
	for _, task := range changes.Tasks {
		s.tasks[task.TaskID] = task
		summary.TasksUpserted++
	}
	for _, object := range changes.Objects {
		s.objects[object.ObjectID] = object
		summary.ObjectsUpserted++
	}

	for _, tombstone := range changes.DeletedEntities {
		delete(s.entities, tombstone.EntityID)
		summary.EntitiesRemoved++
	}
	for _, tombstone := range changes.DeletedTasks {
		delete(s.tasks, tombstone.TaskID)
		summary.TasksRemoved++
	}
	for _, tombstone := range changes.DeletedObjects {
		delete(s.objects, tombstone.ObjectID)
		summary.ObjectsRemoved++
	}

	return summary
}

// Entity looks up an entity by ID
func (s *Snapshot) Entity(id types.EntityID) (model.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entity, ok := s.entities[id]
	return entity, ok
}

// Task looks up a task by ID
func (s *Snapshot) Task(id types.TaskID) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	return task, ok
}

// Object looks up an object by ID
func (s *Snapshot) Object(id types.ObjectID) (model.StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	object, ok := s.objects[id]
	return object, ok
}

// Counts returns the number of entities, tasks and objects held
func (s *Snapshot) Counts() (entities, tasks, objects int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities), len(s.tasks), len(s.objects)
}
