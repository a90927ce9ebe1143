package atlas_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/infra/atlas"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/infra/atlas/atlastest"
)

func TestUploadObject_MultipartAndReferences(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodPost, "/objects/upload", http.StatusCreated, model.StoredObject{ObjectID: "obj-123"})
	srv.Handle(http.MethodPost, "/objects/{id}/references", http.StatusOK, map[string]any{})

	client := atlas.New(srv.URL())

	entityID := types.EntityID("asset-1")
	taskID := types.TaskID("task-alpha")
	stored := gt.R1(client.UploadObject(context.Background(), &model.UploadObjectRequest{
		ObjectID:    "obj-123",
		Data:        bytes.NewReader([]byte("binary-data")),
		ContentType: "application/octet-stream",
		UsageHint:   "mission_video",
		Type:        "heatmap",
		ReferencedBy: []model.ObjectReferenceItem{
			{EntityID: &entityID, TaskID: &taskID},
		},
	})).NoError(t)
	gt.Value(t, stored.ObjectID.String()).Equal("obj-123")

	uploads := srv.RequestsTo(http.MethodPost, "/objects/upload")
	gt.Value(t, len(uploads)).Equal(1)

	body := string(uploads[0].Body)
	gt.True(t, strings.Contains(uploads[0].Header.Get("Content-Type"), "multipart/form-data"))
	gt.True(t, strings.Contains(body, `name="object_id"`))
	gt.True(t, strings.Contains(body, "obj-123"))
	gt.True(t, strings.Contains(body, `name="usage_hint"`))
	gt.True(t, strings.Contains(body, "mission_video"))
	gt.True(t, strings.Contains(body, `name="type"`))
	gt.True(t, strings.Contains(body, "heatmap"))
	gt.True(t, strings.Contains(body, "binary-data"))
	// No JSON content type on multipart requests
	gt.True(t, !strings.Contains(uploads[0].Header.Get("Content-Type"), "application/json"))

	refs := srv.RequestsTo(http.MethodPost, "/objects/obj-123/references")
	gt.Value(t, len(refs)).Equal(1)

	var payload map[string]any
	gt.NoError(t, refs[0].JSON(&payload))
	gt.Value(t, payload["entity_id"]).Equal("asset-1")
	gt.Value(t, payload["task_id"]).Equal("task-alpha")
}

func TestUploadObject_FailsWithoutObjectIDInResponse(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodPost, "/objects/upload", http.StatusCreated, map[string]any{})

	client := atlas.New(srv.URL())

	entityID := types.EntityID("asset-1")
	_, err := client.UploadObject(context.Background(), &model.UploadObjectRequest{
		ObjectID:     "obj-123",
		Data:         bytes.NewReader([]byte("x")),
		ContentType:  "application/octet-stream",
		ReferencedBy: []model.ObjectReferenceItem{{EntityID: &entityID}},
	})
	gt.Error(t, err)
}

func TestUploadObject_RequiresContentType(t *testing.T) {
	client := atlas.New("http://atlas.local")

	_, err := client.UploadObject(context.Background(), &model.UploadObjectRequest{
		ObjectID: "obj-123",
		Data:     bytes.NewReader([]byte("x")),
	})
	gt.Error(t, err)
}

func TestDownloadObject_ContentMetadata(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.HandleFunc(http.MethodGet, "/objects/{id}/download", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("png-bytes"))
	})

	client := atlas.New(srv.URL())

	content := gt.R1(client.DownloadObject(context.Background(), "obj-1")).NoError(t)
	gt.Value(t, string(content.Data)).Equal("png-bytes")
	gt.Value(t, content.ContentType).Equal("image/png")
	gt.Value(t, content.ContentLength).Equal(int64(len("png-bytes")))
}

func TestViewObject_Text(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.HandleFunc(http.MethodGet, "/objects/{id}/view", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	})

	client := atlas.New(srv.URL())

	text := gt.R1(client.ViewObject(context.Background(), "obj-1")).NoError(t)
	gt.Value(t, text.Text).Equal("hello")
	gt.Value(t, text.ContentType).Equal("text/plain")
}

func TestUpdateObject_RequiresAtLeastOneField(t *testing.T) {
	client := atlas.New("http://atlas.local")

	_, err := client.UpdateObject(context.Background(), "obj-1", &model.UpdateObjectRequest{})
	gt.Error(t, err)
}

func TestRemoveObjectReference_SendsExplicitNulls(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodDelete, "/objects/{id}/references", http.StatusOK, map[string]any{})

	client := atlas.New(srv.URL())

	entityID := types.EntityID("asset-1")
	gt.NoError(t, client.RemoveObjectReference(context.Background(), "obj-1",
		model.ObjectReferenceItem{EntityID: &entityID}))

	var payload map[string]any
	gt.NoError(t, srv.LastRequest().JSON(&payload))
	gt.Value(t, payload["entity_id"]).Equal("asset-1")
	if v, exists := payload["task_id"]; !exists || v != nil {
		t.Errorf("task_id must be sent as explicit null, got %v (present=%v)", v, exists)
	}
}

func TestListObjects_Filters(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodGet, "/objects", http.StatusOK, []model.StoredObject{{ObjectID: "obj-1"}})

	client := atlas.New(srv.URL())

	gt.R1(client.ListObjects(context.Background(), model.ObjectListOptions{
		ContentType: "image/png",
		Type:        "heatmap",
	})).NoError(t)

	query := srv.LastRequest().Query
	gt.Value(t, query.Get("content_type")).Equal("image/png")
	gt.Value(t, query.Get("type")).Equal("heatmap")
	gt.Value(t, query.Get("limit")).Equal("100")
}
