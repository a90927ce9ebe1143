package interfaces

import (
	"context"
	"time"

	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
)

// ServiceAPI covers the service status endpoints of Atlas Command
type ServiceAPI interface {
	Root(ctx context.Context) (*model.ServiceInfo, error)
	Health(ctx context.Context) (*model.HealthStatus, error)
	Readiness(ctx context.Context) (*model.ReadinessStatus, error)
}

// EntityAPI covers entity CRUD, checkin and telemetry operations
type EntityAPI interface {
	ListEntities(ctx context.Context, opts model.ListOptions) ([]model.Entity, error)
	GetEntity(ctx context.Context, id types.EntityID) (*model.Entity, error)
	GetEntityByAlias(ctx context.Context, alias string) (*model.Entity, error)
	CreateEntity(ctx context.Context, req *model.CreateEntityRequest) (*model.Entity, error)
	UpdateEntity(ctx context.Context, id types.EntityID, req *model.UpdateEntityRequest) (*model.Entity, error)
	DeleteEntity(ctx context.Context, id types.EntityID) error
	CheckinEntity(ctx context.Context, id types.EntityID, req *model.CheckinRequest, opts model.CheckinOptions) (*model.CheckinResult, error)
	UpdateEntityTelemetry(ctx context.Context, id types.EntityID, telemetry *model.TelemetryComponent) (*model.Entity, error)
}

// TaskAPI covers task CRUD and lifecycle operations
type TaskAPI interface {
	ListTasks(ctx context.Context, opts model.TaskListOptions) ([]model.Task, error)
	GetTask(ctx context.Context, id types.TaskID) (*model.Task, error)
	CreateTask(ctx context.Context, req *model.CreateTaskRequest) (*model.Task, error)
	UpdateTask(ctx context.Context, id types.TaskID, req *model.UpdateTaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, id types.TaskID) error
	ListTasksByEntity(ctx context.Context, entityID types.EntityID, opts model.TaskListOptions) ([]model.Task, error)
	AcknowledgeTask(ctx context.Context, id types.TaskID) (*model.Task, error)
	CompleteTask(ctx context.Context, id types.TaskID, result map[string]any) (*model.Task, error)
	FailTask(ctx context.Context, id types.TaskID, failure *model.TaskFailure) (*model.Task, error)
	TransitionTaskStatus(ctx context.Context, id types.TaskID, transition *model.TaskTransition) (*model.Task, error)
}

// ObjectAPI covers object content, metadata and reference operations
type ObjectAPI interface {
	ListObjects(ctx context.Context, opts model.ObjectListOptions) ([]model.StoredObject, error)
	GetObject(ctx context.Context, id types.ObjectID) (*model.StoredObject, error)
	UploadObject(ctx context.Context, req *model.UploadObjectRequest) (*model.StoredObject, error)
	CreateObjectMetadata(ctx context.Context, req *model.CreateObjectMetadataRequest) (*model.StoredObject, error)
	UpdateObject(ctx context.Context, id types.ObjectID, req *model.UpdateObjectRequest) (*model.StoredObject, error)
	DeleteObject(ctx context.Context, id types.ObjectID) error
	DownloadObject(ctx context.Context, id types.ObjectID) (*model.ObjectContent, error)
	ViewObject(ctx context.Context, id types.ObjectID) (*model.ObjectText, error)
	ListObjectsByEntity(ctx context.Context, entityID types.EntityID, opts model.ListOptions) ([]model.StoredObject, error)
	ListObjectsByTask(ctx context.Context, taskID types.TaskID, opts model.ListOptions) ([]model.StoredObject, error)
	AddObjectReference(ctx context.Context, id types.ObjectID, ref model.ObjectReferenceItem) error
	RemoveObjectReference(ctx context.Context, id types.ObjectID, ref model.ObjectReferenceItem) error
	GetObjectReferences(ctx context.Context, id types.ObjectID) (map[string]any, error)
	ValidateObjectReferences(ctx context.Context, id types.ObjectID) ([]map[string]any, error)
	CleanupObjectReferences(ctx context.Context, id types.ObjectID) (map[string]any, error)
	FindOrphanedObjects(ctx context.Context, opts model.ListOptions) ([]model.StoredObject, error)
}

// QueryAPI covers the dataset replication queries
type QueryAPI interface {
	ChangedSince(ctx context.Context, since time.Time, limitPerType int) (*model.ChangeSet, error)
	FullDataset(ctx context.Context, opts model.DatasetOptions) (*model.Dataset, error)
}

// AtlasClient is the full Atlas Command REST surface
type AtlasClient interface {
	ServiceAPI
	EntityAPI
	TaskAPI
	ObjectAPI
	QueryAPI
}
