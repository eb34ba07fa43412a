package formatter

import (
	"strings"
	"testing"

	"github.com/damacus/iron-navigator/internal/accounts"
	"github.com/damacus/iron-navigator/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFormatItems(t *testing.T) {
	bucket, region := "photos", "eu-west-1"
	items := []models.StorageItem{
		models.NewBucketItem("photos"),
		models.NewDirectoryItem(bucket, region, "2024/summer/"),
		{
			BucketInfo: models.BucketInfo{Bucket: &bucket, Region: &region},
			FileInfo:   models.FileInfo{FileName: "cover.jpg", Size: "2048", FileType: "jpg", Path: "2024/cover.jpg"},
		},
		{
			BucketInfo: models.BucketInfo{Bucket: &bucket, Region: &region},
			FileInfo:   models.FileInfo{FileName: "notes", Size: "12", Path: "notes"},
		},
	}

	out := NewStorageFormatter().FormatItems(items)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Bucket")
	assert.Contains(t, out, "summer/")
	assert.Contains(t, out, "Dir")
	assert.Contains(t, out, "2.0 KB")
	assert.Contains(t, out, "2024/cover.jpg")
	assert.Contains(t, out, "12 B")
}

func TestFormatRegions(t *testing.T) {
	out := NewStorageFormatter().FormatRegions([]models.BucketRegion{
		{Name: "alpha", Region: "eu-west-1"},
		{Name: "beta"},
	})

	lines := strings.Split(out, "\n")
	var betaLine string
	for _, line := range lines {
		if strings.Contains(line, "beta") {
			betaLine = line
		}
	}
	assert.Contains(t, out, "eu-west-1")
	assert.Contains(t, betaLine, "-")
}

func TestFormatAccounts(t *testing.T) {
	out := NewStorageFormatter().FormatAccounts([]accounts.Account{
		{Name: "work", AccessKey: "AKIAWORK", SecretKey: "hidden", DefaultRegion: "eu-north-1", IsDefault: true},
		{Name: "home", AccessKey: "AKIAHOME", SecretKey: "hidden"},
	})

	assert.Contains(t, out, "work")
	assert.Contains(t, out, "AKIAHOME")
	assert.Contains(t, out, "*")
	assert.NotContains(t, out, "hidden")
}
