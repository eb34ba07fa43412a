// Package formatter renders navigator results as terminal tables.
package formatter

import (
	"github.com/damacus/iron-navigator/internal/accounts"
	"github.com/damacus/iron-navigator/internal/models"
	"github.com/damacus/iron-navigator/internal/utils"
)

type StorageFormatter struct{}

func NewStorageFormatter() *StorageFormatter {
	return &StorageFormatter{}
}

// FormatItems renders a listing; buckets, directories and objects share the columns
func (f *StorageFormatter) FormatItems(items []models.StorageItem) string {
	t := newTable("NAME", "TYPE", "SIZE", "PATH")

	for _, item := range items {
		t.Row(item.FileName, itemType(item), utils.FormatSizeString(item.Size), item.Path)
	}

	return t.String()
}

// FormatRegions renders the region table; unresolved regions show as "-"
func (f *StorageFormatter) FormatRegions(regions []models.BucketRegion) string {
	t := newTable("BUCKET", "REGION")

	for _, r := range regions {
		region := r.Region
		if region == "" {
			region = "-"
		}
		t.Row(r.Name, region)
	}

	return t.String()
}

func (f *StorageFormatter) FormatAccounts(list []accounts.Account) string {
	t := newTable("", "NAME", "ACCESS KEY", "REGION", "DESCRIPTION")

	for _, a := range list {
		marker := ""
		if a.IsDefault {
			marker = "*"
		}
		t.Row(marker, a.Name, a.AccessKey, a.DefaultRegion, a.Description)
	}

	return t.String()
}

func itemType(item models.StorageItem) string {
	switch {
	case item.IsBucket:
		return models.FileTypeBucket
	case item.IsDirectory:
		return models.FileTypeDir
	case item.FileType == "":
		return "-"
	default:
		return item.FileType
	}
}
