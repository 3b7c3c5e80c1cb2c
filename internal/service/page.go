// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import "inkwell/internal/models"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PostPage is one page of a post listing together with the pagination
// totals the client renders.
type PostPage struct {
	Items       []models.Post `json:"items"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
	Total       int           `json:"total"`
}

// normalizePage clamps page and limit to sane positive values. Pages are
// 1-based; a page beyond the last yields an empty result, never an error.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// totalPages computes the page count for a total at the given limit.
func totalPages(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
