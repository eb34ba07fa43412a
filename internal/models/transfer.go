package models

// UploadRequest describes a single local file to push into a bucket
type UploadRequest struct {
	LocalPath         string `json:"localPath"`
	DestinationBucket string `json:"destinationBucket"`
	DestinationPath   string `json:"destinationPath"`
	DisplayName       string `json:"displayName"`
}

// ObjectKey returns the key the upload is stored under
func (r UploadRequest) ObjectKey() string {
	if r.DestinationPath == RootPath || r.DestinationPath == "" {
		return r.DisplayName
	}
	return r.DestinationPath
}

// DownloadRequest describes a single object to fetch into a local directory
type DownloadRequest struct {
	Bucket         string `json:"bucket"`
	Key            string `json:"key"`
	DisplayName    string `json:"displayName"`
	DestinationDir string `json:"destinationDir"`
}

// ProgressEvent reports how far a transfer has got
type ProgressEvent struct {
	Name    string  `json:"name"`
	Bucket  string  `json:"bucket"`
	Percent float64 `json:"percent"`
}
