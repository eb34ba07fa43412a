package handlers

import (
	"net/http"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/damacus/iron-navigator/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DefaultBucketPageSize is used when a bucket listing names a page but no size
const DefaultBucketPageSize = 50

type BucketsHandler struct {
	nav    Navigator
	logger *zap.Logger
}

func NewBucketsHandler(nav Navigator, logger *zap.Logger) *BucketsHandler {
	return &BucketsHandler{nav: nav, logger: logger.Named("buckets")}
}

type bucketPage struct {
	Items    []models.StorageItem `json:"items"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
}

// ListBuckets returns one page of buckets, or all of them without a page parameter
func (h *BucketsHandler) ListBuckets(c echo.Context) error {
	identity, err := GetIdentity(c)
	if err != nil {
		return err
	}

	page, pageSize := 0, 0
	err = echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("pageSize", &pageSize).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pagination")
	}

	// without a page parameter the whole list comes back in one go
	if c.QueryParam("page") == "" {
		page, pageSize = 0, 0
	} else if pageSize <= 0 {
		pageSize = DefaultBucketPageSize
	}
	page = max(page, 0)

	items, total, err := h.nav.ListBuckets(c.Request().Context(), identity, page, pageSize)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, bucketPage{Items: items, Total: total, Page: page, PageSize: pageSize})
}

// BucketRegions lists every bucket together with its region
func (h *BucketsHandler) BucketRegions(c echo.Context) error {
	identity, err := GetIdentity(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	items, _, err := h.nav.ListBuckets(ctx, identity, 0, 0)
	if err != nil {
		return toHTTPError(err)
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Path)
	}

	regions := services.LatestSnapshot(h.nav.BackfillRegions(ctx, identity, names))
	if regions == nil {
		regions = []models.BucketRegion{}
	}
	return c.JSON(http.StatusOK, regions)
}

type createBucketRequest struct {
	Name   string `json:"name" form:"name"`
	Region string `json:"region" form:"region"`
}

// CreateBucket creates a bucket in the requested region
func (h *BucketsHandler) CreateBucket(c echo.Context) error {
	identity, err := GetIdentity(c)
	if err != nil {
		return err
	}

	var req createBucketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.nav.CreateBucket(c.Request().Context(), identity, req.Name, req.Region); err != nil {
		h.logger.Warn("create bucket rejected", zap.String("bucket", req.Name), zap.Error(err))
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, models.NewBucketItem(req.Name))
}

type browseQuery struct {
	Bucket string `query:"bucket"`
	Prefix string `query:"prefix"`
}

// Browse lists the root, or the shallow contents of bucket/prefix
func (h *BucketsHandler) Browse(c echo.Context) error {
	identity, err := GetIdentity(c)
	if err != nil {
		return err
	}

	var q browseQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	items, err := h.nav.ListCurrentLocation(c.Request().Context(), identity, q.Bucket, q.Prefix)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// BrowseAll lists every object below bucket/prefix
func (h *BucketsHandler) BrowseAll(c echo.Context) error {
	identity, err := GetIdentity(c)
	if err != nil {
		return err
	}

	var q browseQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if q.Bucket == "" {
		return echo.NewHTTPError(http.StatusBadRequest, services.ErrNoBucketSpecified.Error())
	}

	items, err := h.nav.ListAll(c.Request().Context(), identity, q.Bucket, q.Prefix)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Delete removes a bucket or a single object
func (h *BucketsHandler) Delete(c echo.Context) error {
	identity, err := GetIdentity(c)
	if err != nil {
		return err
	}

	var target models.DeleteTarget
	if err := c.Bind(&target); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.nav.Delete(c.Request().Context(), identity, target); err != nil {
		h.logger.Warn("delete rejected", zap.String("name", target.Name), zap.Error(err))
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
