package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/infra/atlas"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/infra/atlas/atlastest"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/usecase"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSync_FillResetsSnapshot(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodGet, "/queries/full", http.StatusOK, model.Dataset{
		Entities: []model.Entity{{EntityID: "asset-1"}, {EntityID: "asset-2"}},
		Tasks:    []model.Task{{TaskID: "task-1", Status: model.TaskStatusPending}},
		Objects:  []model.StoredObject{{ObjectID: "obj-1"}},
	})

	client := atlas.New(srv.URL())
	snapshot := usecase.NewSnapshot()
	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	sync := usecase.NewSync(client, snapshot, usecase.WithSyncClock(fixedClock(start)))

	summary := gt.R1(sync.Fill(context.Background())).NoError(t)
	gt.Value(t, summary.EntitiesUpserted).Equal(2)
	gt.Value(t, summary.TasksUpserted).Equal(1)
	gt.Value(t, summary.ObjectsUpserted).Equal(1)
	gt.Value(t, summary.Next).Equal("2026-08-20T09:00:00Z")

	entities, tasks, objects := snapshot.Counts()
	gt.Value(t, entities).Equal(2)
	gt.Value(t, tasks).Equal(1)
	gt.Value(t, objects).Equal(1)

	entity, ok := snapshot.Entity("asset-2")
	gt.True(t, ok)
	gt.Value(t, entity.EntityID.String()).Equal("asset-2")
}

func TestSync_PollAppliesChangesAndAdvancesCursor(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodGet, "/queries/changed-since", http.StatusOK, model.ChangeSet{
		Entities:     []model.Entity{{EntityID: "asset-1"}},
		Tasks:        []model.Task{{TaskID: "task-1", Status: model.TaskStatusPending}},
		DeletedTasks: []model.DeletedTask{{TaskID: "task-old"}},
	})

	client := atlas.New(srv.URL())
	snapshot := usecase.NewSnapshot()
	snapshot.Reset(&model.Dataset{Tasks: []model.Task{{TaskID: "task-old"}}})

	clock := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	sync := usecase.NewSync(client, snapshot,
		usecase.WithSyncClock(func() time.Time {
			now := clock
			clock = clock.Add(30 * time.Second)
			return now
		}),
		usecase.WithSyncLimitPerType(200),
	)

	summary := gt.R1(sync.Poll(context.Background())).NoError(t)
	gt.Value(t, summary.EntitiesUpserted).Equal(1)
	gt.Value(t, summary.TasksUpserted).Equal(1)
	gt.Value(t, summary.TasksRemoved).Equal(1)
	gt.Value(t, summary.Total()).Equal(3)
	gt.Value(t, summary.Next).Equal("2026-08-20T09:00:00Z")

	if _, ok := snapshot.Task("task-old"); ok {
		t.Error("tombstoned task must be removed from the snapshot")
	}
	_, ok := snapshot.Task("task-1")
	gt.True(t, ok)

	gt.Value(t, srv.LastRequest().Query.Get("limit_per_type")).Equal("200")

	// Second poll starts from the first poll's start time
	gt.R1(sync.Poll(context.Background())).NoError(t)
	gt.Value(t, srv.LastRequest().Query.Get("since")).Equal("2026-08-20T09:00:00Z")
}

func TestSync_PollErrorKeepsCursor(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodGet, "/queries/changed-since", http.StatusInternalServerError, map[string]any{
		"detail": "backend unavailable",
	})

	client := atlas.New(srv.URL())
	sync := usecase.NewSync(client, usecase.NewSnapshot())

	_, err := sync.Poll(context.Background())
	gt.Error(t, err)
}
