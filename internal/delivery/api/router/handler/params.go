package handler

import (
	"strconv"
	"strings"

	"parlaseramik/config"
	"parlaseramik/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// pageRequest reads the page and size query parameters. Page is zero-based.
// Missing values fall back to the configured default and size is capped at
// the configured maximum.
func pageRequest(c echo.Context, cfg config.PaginationConfig) (entity.PageRequest, error) {
	page := entity.PageRequest{Page: 0, Size: cfg.DefaultSize}

	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, errors.Wrap(err, "page")
		}
		page.Page = max(n, 0)
	}

	if raw := c.QueryParam("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, errors.Wrap(err, "size")
		}
		if n > 0 {
			page.Size = min(n, cfg.MaxSize)
		}
	}

	return page, nil
}

var productSortFields = map[string]entity.SortField{
	string(entity.SortByCreatedAt): entity.SortByCreatedAt,
	string(entity.SortByPrice):     entity.SortByPrice,
	string(entity.SortByNameTr):    entity.SortByNameTr,
}

// productSort reads sortBy and sortDir. Without either the listing keeps its
// default order; a missing direction means descending.
func productSort(c echo.Context) (entity.Sort, error) {
	sortBy, sortDir := c.QueryParam("sortBy"), c.QueryParam("sortDir")
	if sortBy == "" && sortDir == "" {
		return entity.Sort{}, nil
	}

	sort := entity.Sort{Field: entity.SortByCreatedAt, Desc: true}
	if sortBy != "" {
		field, ok := productSortFields[sortBy]
		if !ok {
			return sort, errors.Errorf("unknown sort field %q", sortBy)
		}
		sort.Field = field
	}

	switch strings.ToUpper(sortDir) {
	case "", "DESC":
	case "ASC":
		sort.Desc = false
	default:
		return sort, errors.Errorf("unknown sort direction %q", sortDir)
	}

	return sort, nil
}

func pathID(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))

	return id, err == nil
}
