// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// excerptFallbackLen is how many runes of the body are shown when a post
// has no explicit excerpt.
const excerptFallbackLen = 150

// Post is a single blog entry. The author is fixed at creation time and
// the category must always reference an existing Category row.
type Post struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt"`
	FeaturedImage string    `json:"featuredImage"`
	Tags          []string  `json:"tags"`
	IsPublished   bool      `json:"isPublished"`
	ViewCount     int       `json:"viewCount"`
	AuthorID      uuid.UUID `json:"authorId"`
	CategoryID    uuid.UUID `json:"categoryId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Populated by store methods on detail reads.
	Author   *Author   `json:"author,omitempty"`
	Category *Category `json:"category,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
}

// Author is the subset of a user exposed on public post payloads.
type Author struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
}

// Comment is a reader comment embedded in its parent post. Comments are
// append-only; deleting the post removes them.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"-"`
	UserID    uuid.UUID `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	User *Author `json:"user,omitempty"`
}

// DisplayExcerpt returns the excerpt if one is set, otherwise a truncated
// prefix of the post body.
func (p *Post) DisplayExcerpt() string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	body := strings.TrimSpace(p.Content)
	runes := []rune(body)
	if len(runes) <= excerptFallbackLen {
		return body
	}
	return strings.TrimSpace(string(runes[:excerptFallbackLen])) + "..."
}
