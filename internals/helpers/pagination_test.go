package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseVia(t *testing.T, target string, opt PaginationOptions) PaginationParams {
	t.Helper()

	app := fiber.New()
	var got PaginationParams
	app.Get("/list", func(c *fiber.Ctx) error {
		got = ParsePaginationWith(c, opt)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestParsePagination(t *testing.T) {
	got := parseVia(t, "/list?page=3&per_page=10", DefaultOpts)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 10, got.PerPage)
	assert.Equal(t, 20, got.Offset())

	// defaults
	got = parseVia(t, "/list", DefaultOpts)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, DefaultOpts.DefaultPerPage, got.PerPage)

	// "limit" is an accepted alias
	got = parseVia(t, "/list?limit=7", DefaultOpts)
	assert.Equal(t, 7, got.PerPage)

	// garbage and out-of-range values fall back
	got = parseVia(t, "/list?page=-4&per_page=abc", DefaultOpts)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, DefaultOpts.DefaultPerPage, got.PerPage)

	// capped at the option maximum
	got = parseVia(t, "/list?per_page=9999", AdminOpts)
	assert.Equal(t, AdminOpts.MaxPerPage, got.PerPage)
}

func TestPaginationMeta(t *testing.T) {
	p := PaginationParams{Page: 2, PerPage: 10}
	meta := p.Meta(25)
	assert.EqualValues(t, 2, meta["page"])
	assert.EqualValues(t, 10, meta["per_page"])
	assert.EqualValues(t, 25, meta["total"])
	assert.EqualValues(t, 3, meta["total_pages"])

	// an empty result set still reports one page
	meta = p.Meta(0)
	assert.EqualValues(t, 1, meta["total_pages"])
}
