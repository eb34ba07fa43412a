// Package models contains data structures shared by the navigator, the CLI and the handlers
package models

import "strings"

const (
	// FileTypeDir marks synthetic directory items built from common prefixes
	FileTypeDir = "Dir"
	// FileTypeBucket marks bucket items returned for the root location
	FileTypeBucket = "Bucket"
	// RootPath is the destination marker meaning "the bucket root"
	RootPath = "/"
)

// Identity is the access-key/secret-key pair used for one operation
type Identity struct {
	AccessKey     string `json:"accessKey"`
	SecretKey     string `json:"secretKey"`
	DefaultRegion string `json:"defaultRegion,omitempty"`
}

// IsZero reports whether the identity carries no access key
func (i Identity) IsZero() bool {
	return i.AccessKey == ""
}

// BucketInfo locates an item inside the store
type BucketInfo struct {
	Bucket   *string `json:"bucket,omitempty"`
	Region   *string `json:"region,omitempty"`
	IsBucket bool    `json:"isBucket"`
}

// FileInfo describes the file-like view of an item
type FileInfo struct {
	FileName    string `json:"fileName"`
	Size        string `json:"size"`
	FileType    string `json:"fileType"`
	Path        string `json:"path"`
	IsDirectory bool   `json:"isDirectory"`
}

// StorageItem is one row of a listing: a bucket, a directory or an object
type StorageItem struct {
	BucketInfo
	FileInfo
}

// NewBucketItem builds the root-level item for a bucket
func NewBucketItem(name string) StorageItem {
	return StorageItem{
		BucketInfo: BucketInfo{IsBucket: true},
		FileInfo: FileInfo{
			FileName: name,
			FileType: FileTypeBucket,
			Path:     name,
		},
	}
}

// NewDirectoryItem builds a synthetic directory item for a common prefix
func NewDirectoryItem(bucket, region, prefix string) StorageItem {
	return StorageItem{
		BucketInfo: BucketInfo{Bucket: &bucket, Region: &region},
		FileInfo: FileInfo{
			FileName:    DirectoryName(prefix),
			FileType:    FileTypeDir,
			Path:        prefix,
			IsDirectory: true,
		},
	}
}

// BucketName returns the bucket the item lives in, or its own name for buckets
func (s StorageItem) BucketName() string {
	if s.IsBucket {
		return s.Path
	}
	if s.Bucket == nil {
		return ""
	}
	return *s.Bucket
}

// DirectoryName returns the last non-empty segment of a prefix followed by "/"
func DirectoryName(prefix string) string {
	segments := strings.Split(prefix, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i] + "/"
		}
	}
	return ""
}

// FileName returns the last segment of a key; keys ending in "/" have none
func FileName(key string) string {
	if key == "" || strings.HasSuffix(key, "/") {
		return ""
	}
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[idx+1:]
	}
	return key
}

// FileExtension returns the extension of a key without the leading dot
func FileExtension(key string) string {
	name := FileName(key)
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}

// BucketRegion is one slot of the region table filled in by the backfill
type BucketRegion struct {
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

// DeleteTarget names what Delete should remove
type DeleteTarget struct {
	IsBucket    bool    `json:"isBucket"`
	Bucket      *string `json:"bucket,omitempty"`
	Name        string  `json:"name"`
	IsDirectory bool    `json:"isDirectory"`
}
