package helper

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const DefaultPage = 1

type PaginationOptions struct {
	DefaultPerPage int
	MaxPerPage     int
}

var (
	DefaultOpts = PaginationOptions{DefaultPerPage: 25, MaxPerPage: 200}
	AdminOpts   = PaginationOptions{DefaultPerPage: 50, MaxPerPage: 500}
)

type PaginationParams struct {
	Page    int
	PerPage int
}

func ParsePagination(c *fiber.Ctx) PaginationParams {
	return ParsePaginationWith(c, DefaultOpts)
}

func ParsePaginationWith(c *fiber.Ctx, opt PaginationOptions) PaginationParams {
	page := atoiDefault(c.Query("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	perRaw := strings.TrimSpace(firstNonEmpty(c.Query("per_page"), c.Query("limit")))
	per := atoiDefault(perRaw, opt.DefaultPerPage)
	if per < 1 {
		per = opt.DefaultPerPage
	}
	if per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}

	return PaginationParams{Page: page, PerPage: per}
}

func (p PaginationParams) Offset() int { return (p.Page - 1) * p.PerPage }

// Meta builds the pagination block included next to list payloads.
func (p PaginationParams) Meta(total int64) fiber.Map {
	pages := int(math.Ceil(float64(total) / float64(p.PerPage)))
	if pages < 1 {
		pages = 1
	}
	return fiber.Map{
		"page":        p.Page,
		"per_page":    p.PerPage,
		"total":       total,
		"total_pages": pages,
	}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
