// Package utils provides shared utility functions
package utils

import (
	"fmt"
	"strconv"
)

// FormatBytes converts bytes to a binary-unit string such as "1.5 GB"
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatFileSize formats an object size; negative sizes print as zero
func FormatFileSize(size int64) string {
	if size < 0 {
		return "0 B"
	}
	return FormatBytes(uint64(size))
}

// FormatSizeString formats the decimal size carried by listing items.
// Empty sizes (directories, buckets) stay empty and unparsable ones are returned as is.
func FormatSizeString(size string) string {
	if size == "" {
		return ""
	}
	n, err := strconv.ParseInt(size, 10, 64)
	if err != nil {
		return size
	}
	return FormatFileSize(n)
}
