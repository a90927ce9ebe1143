package model

import (
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
)

// StoredObject is the metadata record of an object held by Atlas Command
type StoredObject struct {
	ObjectID     types.ObjectID        `json:"object_id"`
	Path         *string               `json:"path,omitempty"`
	Bucket       *string               `json:"bucket,omitempty"`
	SizeBytes    *int64                `json:"size_bytes,omitempty"`
	ContentType  *string               `json:"content_type,omitempty"`
	Type         *string               `json:"type,omitempty"`
	UsageHints   []string              `json:"usage_hints,omitempty"`
	ReferencedBy []ObjectReferenceItem `json:"referenced_by,omitempty"`
	Checksum     *string               `json:"checksum,omitempty"`
	ExpiryTime   *string               `json:"expiry_time,omitempty"`
}

// UploadObjectRequest uploads object content as multipart form data.
// ReferencedBy entries are attached after the upload succeeds.
type UploadObjectRequest struct {
	ObjectID     types.ObjectID
	Data         io.Reader
	FileName     string // defaults to "upload.bin"
	ContentType  string
	UsageHint    string
	Type         string
	ReferencedBy []ObjectReferenceItem
}

func (x *UploadObjectRequest) Validate() error {
	if x.ObjectID == "" {
		return goerr.New("object upload requires object_id")
	}
	if x.ContentType == "" {
		return goerr.New("object upload requires content_type")
	}
	if x.Data == nil {
		return goerr.New("object upload requires content data")
	}
	return nil
}

// CreateObjectMetadataRequest registers object metadata without content
type CreateObjectMetadataRequest struct {
	ObjectID     types.ObjectID        `json:"object_id"`
	Path         *string               `json:"path,omitempty"`
	Bucket       *string               `json:"bucket,omitempty"`
	SizeBytes    *int64                `json:"size_bytes,omitempty"`
	ContentType  *string               `json:"content_type,omitempty"`
	Type         *string               `json:"type,omitempty"`
	UsageHints   []string              `json:"usage_hints,omitempty"`
	ReferencedBy []ObjectReferenceItem `json:"referenced_by,omitempty"`
	Extra        map[string]any        `json:"extra,omitempty"`
}

func (x *CreateObjectMetadataRequest) Validate() error {
	if x.ObjectID == "" {
		return goerr.New("object metadata requires object_id")
	}
	return nil
}

// UpdateObjectRequest is a partial object update. At least one field must be set.
type UpdateObjectRequest struct {
	UsageHints   []string              `json:"usage_hints,omitempty"`
	ReferencedBy []ObjectReferenceItem `json:"referenced_by,omitempty"`
}

func (x *UpdateObjectRequest) Validate() error {
	if x.UsageHints == nil && x.ReferencedBy == nil {
		return goerr.New("object update requires at least one field to update")
	}
	return nil
}

// ObjectContent is raw object content with transfer metadata.
// ContentLength is -1 when the server did not report a usable length.
type ObjectContent struct {
	Data          []byte
	ContentType   string
	ContentLength int64
}

// ObjectText is viewable object content decoded as text
type ObjectText struct {
	Text          string
	ContentType   string
	ContentLength int64
}

// ObjectListOptions filter object listings
type ObjectListOptions struct {
	ContentType string
	Type        string
	Limit       int
	Offset      int
}
