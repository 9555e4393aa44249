package models

// ObjectMetadata accompanies a stored binary object.
type ObjectMetadata struct {
	ContentType  string
	CacheControl string
	Extra        map[string]string
}

// Object is a stored binary asset.
type Object struct {
	Key      string
	Data     []byte
	Metadata ObjectMetadata
}

// UploadResult describes a stored upload.
type UploadResult struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int    `json:"size"`
	ContentType string `json:"contentType"`
}
