package atlas_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/infra/atlas"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/infra/atlas/atlastest"
)

func TestClient_AuthHeader(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodGet, "/health", http.StatusOK, map[string]string{"status": "healthy"})

	client := atlas.New(srv.URL()+"/", atlas.WithToken("secret"))

	status := gt.R1(client.Health(context.Background())).NoError(t)
	gt.Value(t, status.Status).Equal("healthy")

	req := srv.LastRequest()
	gt.Value(t, req.Header.Get("Authorization")).Equal("Bearer secret")
	gt.Value(t, req.Header.Get("Content-Type")).Equal("application/json")
}

func TestClient_NoTokenOmitsAuthHeader(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodGet, "/health", http.StatusOK, map[string]string{"status": "healthy"})

	client := atlas.New(srv.URL())
	gt.R1(client.Health(context.Background())).NoError(t)

	gt.Value(t, srv.LastRequest().Header.Get("Authorization")).Equal("")
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodGet, "/entities/{id}", http.StatusNotFound, map[string]string{"detail": "not found"})

	client := atlas.New(srv.URL())

	_, err := client.GetEntity(context.Background(), "missing")
	gt.Error(t, err)
	gt.Value(t, atlas.StatusCode(err)).Equal(http.StatusNotFound)
}

func TestClient_StatusCodeOnNonAPIError(t *testing.T) {
	client := atlas.New("http://127.0.0.1:0")

	_, err := client.Health(context.Background())
	gt.Error(t, err)
	gt.Value(t, atlas.StatusCode(err)).Equal(0)
}

func TestClient_EmptyBodyAccepted(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodDelete, "/entities/{id}", http.StatusNoContent, nil)

	client := atlas.New(srv.URL())
	gt.NoError(t, client.DeleteEntity(context.Background(), "asset-1"))
}

func TestClient_ServiceEndpoints(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodGet, "/", http.StatusOK, model.ServiceInfo{Name: "atlas-command", Version: "1.9.0"})
	srv.Handle(http.MethodGet, "/readiness", http.StatusOK, map[string]any{
		"ready":  true,
		"checks": map[string]string{"database": "ok"},
	})

	client := atlas.New(srv.URL())
	ctx := context.Background()

	info := gt.R1(client.Root(ctx)).NoError(t)
	gt.Value(t, info.Name).Equal("atlas-command")

	readiness := gt.R1(client.Readiness(ctx)).NoError(t)
	gt.True(t, readiness.Ready)
	gt.Value(t, readiness.Checks["database"]).Equal("ok")
}
