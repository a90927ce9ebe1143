package atlas

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
)

const (
	defaultObjectListLimit  = 100
	defaultObjectScopeLimit = 50
	defaultUploadFileName   = "upload.bin"
)

// ListObjects lists stored objects with optional content type filters
func (c *Client) ListObjects(ctx context.Context, opts model.ObjectListOptions) ([]model.StoredObject, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultObjectListLimit
	}
	query := url.Values{
		"limit":  {strconv.Itoa(opts.Limit)},
		"offset": {strconv.Itoa(opts.Offset)},
	}
	if opts.ContentType != "" {
		query.Set("content_type", opts.ContentType)
	}
	if opts.Type != "" {
		query.Set("type", opts.Type)
	}

	var objects []model.StoredObject
	if err := c.do(ctx, http.MethodGet, "/objects", query, nil, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

// GetObject fetches object metadata by ID
func (c *Client) GetObject(ctx context.Context, id types.ObjectID) (*model.StoredObject, error) {
	var object model.StoredObject
	if err := c.do(ctx, http.MethodGet, "/objects/"+url.PathEscape(id.String()), nil, nil, &object); err != nil {
		return nil, err
	}
	return &object, nil
}

// UploadObject uploads object content as multipart form data, then attaches
// any requested references one by one.
func (c *Client) UploadObject(ctx context.Context, req *model.UploadObjectRequest) (*model.StoredObject, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = defaultUploadFileName
	}

	var stored model.StoredObject
	err := c.doMultipart(ctx, "/objects/upload", func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("file", fileName)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, req.Data); err != nil {
			return err
		}

		fields := map[string]string{"object_id": req.ObjectID.String()}
		if req.UsageHint != "" {
			fields["usage_hint"] = req.UsageHint
		}
		if req.Type != "" {
			fields["type"] = req.Type
		}
		for name, value := range fields {
			if err := w.WriteField(name, value); err != nil {
				return err
			}
		}
		return nil
	}, &stored)
	if err != nil {
		return nil, err
	}

	if len(req.ReferencedBy) > 0 {
		if stored.ObjectID == "" {
			return nil, goerr.New("upload response did not include an object_id, cannot attach references",
				goerr.V("requested_object_id", req.ObjectID))
		}
		for _, ref := range req.ReferencedBy {
			if err := c.AddObjectReference(ctx, stored.ObjectID, ref); err != nil {
				return nil, err
			}
		}
	}

	return &stored, nil
}

// CreateObjectMetadata registers object metadata without uploading content
func (c *Client) CreateObjectMetadata(ctx context.Context, req *model.CreateObjectMetadataRequest) (*model.StoredObject, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var object model.StoredObject
	if err := c.do(ctx, http.MethodPost, "/objects", nil, req, &object); err != nil {
		return nil, err
	}
	return &object, nil
}

// UpdateObject applies a partial update to object metadata
func (c *Client) UpdateObject(ctx context.Context, id types.ObjectID, req *model.UpdateObjectRequest) (*model.StoredObject, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var object model.StoredObject
	if err := c.do(ctx, http.MethodPatch, "/objects/"+url.PathEscape(id.String()), nil, req, &object); err != nil {
		return nil, err
	}
	return &object, nil
}

// DeleteObject removes an object
func (c *Client) DeleteObject(ctx context.Context, id types.ObjectID) error {
	return c.do(ctx, http.MethodDelete, "/objects/"+url.PathEscape(id.String()), nil, nil, nil)
}

// DownloadObject fetches raw object bytes with content metadata
func (c *Client) DownloadObject(ctx context.Context, id types.ObjectID) (*model.ObjectContent, error) {
	data, contentType, length, err := c.doRaw(ctx, "/objects/"+url.PathEscape(id.String())+"/download")
	if err != nil {
		return nil, err
	}
	return &model.ObjectContent{
		Data:          data,
		ContentType:   contentType,
		ContentLength: length,
	}, nil
}

// ViewObject fetches viewable object content as text
func (c *Client) ViewObject(ctx context.Context, id types.ObjectID) (*model.ObjectText, error) {
	data, contentType, length, err := c.doRaw(ctx, "/objects/"+url.PathEscape(id.String())+"/view")
	if err != nil {
		return nil, err
	}
	return &model.ObjectText{
		Text:          string(data),
		ContentType:   contentType,
		ContentLength: length,
	}, nil
}

func scopeListQuery(opts model.ListOptions) url.Values {
	if opts.Limit <= 0 {
		opts.Limit = defaultObjectScopeLimit
	}
	return url.Values{
		"limit":  {strconv.Itoa(opts.Limit)},
		"offset": {strconv.Itoa(opts.Offset)},
	}
}

// ListObjectsByEntity lists objects referencing an entity
func (c *Client) ListObjectsByEntity(ctx context.Context, entityID types.EntityID, opts model.ListOptions) ([]model.StoredObject, error) {
	var objects []model.StoredObject
	path := "/entities/" + url.PathEscape(entityID.String()) + "/objects"
	if err := c.do(ctx, http.MethodGet, path, scopeListQuery(opts), nil, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

// ListObjectsByTask lists objects referencing a task
func (c *Client) ListObjectsByTask(ctx context.Context, taskID types.TaskID, opts model.ListOptions) ([]model.StoredObject, error) {
	var objects []model.StoredObject
	path := "/tasks/" + url.PathEscape(taskID.String()) + "/objects"
	if err := c.do(ctx, http.MethodGet, path, scopeListQuery(opts), nil, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

// AddObjectReference attaches an entity or task reference to an object.
// Unset sides are sent as explicit nulls, matching the API contract.
func (c *Client) AddObjectReference(ctx context.Context, id types.ObjectID, ref model.ObjectReferenceItem) error {
	payload := map[string]any{
		"entity_id": ref.EntityID,
		"task_id":   ref.TaskID,
	}
	return c.do(ctx, http.MethodPost, "/objects/"+url.PathEscape(id.String())+"/references", nil, payload, nil)
}

// RemoveObjectReference detaches an entity or task reference from an object
func (c *Client) RemoveObjectReference(ctx context.Context, id types.ObjectID, ref model.ObjectReferenceItem) error {
	payload := map[string]any{
		"entity_id": ref.EntityID,
		"task_id":   ref.TaskID,
	}
	return c.do(ctx, http.MethodDelete, "/objects/"+url.PathEscape(id.String())+"/references", nil, payload, nil)
}

// GetObjectReferences returns reference bookkeeping info for an object
func (c *Client) GetObjectReferences(ctx context.Context, id types.ObjectID) (map[string]any, error) {
	var info map[string]any
	path := "/objects/" + url.PathEscape(id.String()) + "/references/info"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// ValidateObjectReferences checks each reference of an object for dangling targets
func (c *Client) ValidateObjectReferences(ctx context.Context, id types.ObjectID) ([]map[string]any, error) {
	var results []map[string]any
	path := "/objects/" + url.PathEscape(id.String()) + "/references/validate"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// CleanupObjectReferences removes dangling references from an object
func (c *Client) CleanupObjectReferences(ctx context.Context, id types.ObjectID) (map[string]any, error) {
	var result map[string]any
	path := "/objects/" + url.PathEscape(id.String()) + "/references/cleanup"
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// FindOrphanedObjects lists objects with no remaining references
func (c *Client) FindOrphanedObjects(ctx context.Context, opts model.ListOptions) ([]model.StoredObject, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultObjectListLimit
	}
	query := url.Values{
		"limit":  {strconv.Itoa(opts.Limit)},
		"offset": {strconv.Itoa(opts.Offset)},
	}

	var objects []model.StoredObject
	if err := c.do(ctx, http.MethodGet, "/objects/orphaned", query, nil, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}
