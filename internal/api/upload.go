package api

import (
	"context"
)

// The upload endpoint identifies the image by a fixed multipart part
// name and file name regardless of the actual image format.
const (
	imagePartName     = "imagedata"
	imagePartFileName = "image.png"
)

// Accepted access_policy values.
const (
	AccessPolicyAnyone = "anyone"
	AccessPolicyOnlyMe = "only_me"
)

// UploadParams carries the image bytes plus the optional metadata fields
// for an upload. Zero-valued optional fields are omitted from the
// request; AccessPolicy is always sent and defaults to "anyone".
type UploadParams struct {
	ImageData        []byte
	AccessPolicy     string
	MetadataIsPublic string
	RefererURL       string
	App              string
	Title            string
	Desc             string
	CreatedAt        string
	CollectionID     string
}

// Validate rejects params the server would refuse, before any request is
// made.
func (p *UploadParams) Validate() error {
	if len(p.ImageData) == 0 {
		return &ValidationError{Field: "imagedata", Message: "image data is required"}
	}
	switch p.AccessPolicy {
	case "", AccessPolicyAnyone, AccessPolicyOnlyMe:
	default:
		return &ValidationError{Field: "access_policy", Message: "access_policy must be 'anyone' or 'only_me'"}
	}
	switch p.MetadataIsPublic {
	case "", "true", "false":
	default:
		return &ValidationError{Field: "metadata_is_public", Message: "metadata_is_public must be 'true' or 'false'"}
	}
	return nil
}

// formFields returns the multipart text fields. access_policy is always
// present; everything else appears only when set.
func (p *UploadParams) formFields() map[string]string {
	policy := p.AccessPolicy
	if policy == "" {
		policy = AccessPolicyAnyone
	}
	fields := map[string]string{
		"access_policy": policy,
	}

	optional := map[string]string{
		"metadata_is_public": p.MetadataIsPublic,
		"referer_url":        p.RefererURL,
		"app":                p.App,
		"title":              p.Title,
		"desc":               p.Desc,
		"created_at":         p.CreatedAt,
		"collection_id":      p.CollectionID,
	}
	for key, value := range optional {
		if value != "" {
			fields[key] = value
		}
	}
	return fields
}

// Upload sends image bytes to the upload origin and returns the stored
// capture's identifiers.
func (s ImagesService) Upload(ctx context.Context, params UploadParams) (*UploadResult, error) {
	return uploadImage(ctx, s, params)
}

func uploadImage(ctx context.Context, r Requester, params UploadParams) (*UploadResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var result UploadResult
	if err := r.postMultipart(ctx, r.uploadURL(uploadPath), params.formFields(), params.ImageData, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
