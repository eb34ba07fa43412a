package services

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7"
)

var (
	// ErrNoAccountConfigured is returned when no identity could be resolved for a call
	ErrNoAccountConfigured = errors.New("no account configured")
	// ErrNoBucketSpecified is returned when an object delete carries no bucket
	ErrNoBucketSpecified = errors.New("No bucket specified!")
	// ErrDirectoryDeleteUnsupported is returned for directory targets; expand them with ListAll first
	ErrDirectoryDeleteUnsupported = errors.New("directory deletion is not supported, delete its objects instead")
	// ErrInvalidBucketName is returned before any network call for names outside 3-63 characters
	ErrInvalidBucketName = errors.New("bucket name must be between 3 and 63 characters")
	// ErrUnsafeDestination is returned when a download key would escape its destination directory
	ErrUnsafeDestination = errors.New("object key resolves outside the destination directory")
)

// ProtocolError is a call the object store rejected
type ProtocolError struct {
	Op      string
	Bucket  string
	Key     string
	Message string
	Err     error
}

func (e *ProtocolError) Error() string {
	return e.Message
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// newProtocolError wraps err with the service's message, or fallback when it sent none
func newProtocolError(op, bucket, key string, err error, fallback string) *ProtocolError {
	msg := ServiceMessage(err)
	if msg == "" {
		msg = fallback
	}
	return &ProtocolError{Op: op, Bucket: bucket, Key: key, Message: msg, Err: err}
}

// ServiceMessage extracts the human-readable message an S3 service attached to err
func ServiceMessage(err error) string {
	if err == nil {
		return ""
	}
	var perr *ProtocolError
	if errors.As(err, &perr) {
		return perr.Message
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ErrorMessage(); msg != "" {
			return msg
		}
		return apiErr.ErrorCode()
	}
	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		if minioErr.Message != "" {
			return minioErr.Message
		}
		return minioErr.Code
	}
	return ""
}

// describe prefixes a generic description with the service message when there is one
func describe(prefix string, err error) string {
	if msg := ServiceMessage(err); msg != "" {
		return fmt.Sprintf("%s, %s", prefix, msg)
	}
	return prefix
}
