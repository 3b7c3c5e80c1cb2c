// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// Validation limits for post fields.
const (
	maxTitleLen   = 100
	maxExcerptLen = 200
)

// Content implements post operations: paginated listing, id-or-slug
// detail reads with view counting, author-gated mutation, and comment
// appends.
type Content struct {
	posts      *store.PostStore
	categories *store.CategoryStore
}

// NewContent returns a Content service over the given stores.
func NewContent(posts *store.PostStore, categories *store.CategoryStore) *Content {
	return &Content{posts: posts, categories: categories}
}

// PostInput carries the fields for creating a post. Tags is a free-text
// comma list; the service trims tokens and drops empty ones.
type PostInput struct {
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	CategoryID    uuid.UUID `json:"categoryId"`
	Excerpt       string    `json:"excerpt"`
	FeaturedImage string    `json:"featuredImage"`
	Tags          string    `json:"tags"`
	IsPublished   bool      `json:"isPublished"`
}

// PostPatch carries a partial post update. Nil fields are left untouched;
// present fields follow the same rules as create.
type PostPatch struct {
	Title         *string    `json:"title"`
	Content       *string    `json:"content"`
	CategoryID    *uuid.UUID `json:"categoryId"`
	Excerpt       *string    `json:"excerpt"`
	FeaturedImage *string    `json:"featuredImage"`
	Tags          *string    `json:"tags"`
	IsPublished   *bool      `json:"isPublished"`
}

// ParseTags splits a comma list into trimmed, non-empty tags, preserving
// input order.
func ParseTags(s string) []string {
	tags := []string{}
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tags = append(tags, tok)
		}
	}
	return tags
}

// List returns one page of posts, newest first, optionally filtered to an
// exact category. A page past the end yields empty items with correct
// totals. Listing never touches view counters.
func (c *Content) List(page, limit int, categoryID *uuid.UUID) (*PostPage, error) {
	page, limit = normalizePage(page, limit)

	total, err := c.posts.Count(categoryID)
	if err != nil {
		return nil, storage(err)
	}

	items, err := c.posts.List(limit, (page-1)*limit, categoryID)
	if err != nil {
		return nil, storage(err)
	}
	if items == nil {
		items = []models.Post{}
	}

	return &PostPage{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		Total:       total,
	}, nil
}

// Get resolves a post by id or slug, bumps its view counter by one, and
// returns it with author, category, and comments populated.
func (c *Content) Get(ident Identifier) (*models.Post, error) {
	post, err := c.find(ident)
	if err != nil {
		return nil, err
	}

	views, err := c.posts.IncrementViews(post.ID)
	if err != nil {
		return nil, storage(err)
	}
	post.ViewCount = views

	comments, err := c.posts.Comments(post.ID)
	if err != nil {
		return nil, storage(err)
	}
	post.Comments = comments
	return post, nil
}

// Create inserts a post authored by the calling user. The author always
// comes from the authenticated identity, never from the request body.
func (c *Content) Create(userID uuid.UUID, in PostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, validationf("content", "content is required")
	}
	if err := validateExcerpt(in.Excerpt); err != nil {
		return nil, err
	}

	if err := c.checkCategory(in.CategoryID); err != nil {
		return nil, err
	}

	s := slug.Generate(title)
	if s == "" {
		return nil, validationf("title", "title must contain at least one letter or digit")
	}

	created, err := c.posts.Create(&models.Post{
		Title:         title,
		Slug:          s,
		Content:       in.Content,
		Excerpt:       strings.TrimSpace(in.Excerpt),
		FeaturedImage: strings.TrimSpace(in.FeaturedImage),
		Tags:          ParseTags(in.Tags),
		IsPublished:   in.IsPublished,
		AuthorID:      userID,
		CategoryID:    in.CategoryID,
	})
	if err != nil {
		return nil, c.translateWriteError(err)
	}
	return created, nil
}

// Update applies a partial patch to a post owned by the calling user.
// The slug is re-derived whenever the title changes.
func (c *Content) Update(userID, postID uuid.UUID, patch PostPatch) (*models.Post, error) {
	post, err := c.posts.FindByID(postID)
	if err != nil {
		return nil, storage(err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if post.AuthorID != userID {
		return nil, ErrForbidden
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		s := slug.Generate(title)
		if s == "" {
			return nil, validationf("title", "title must contain at least one letter or digit")
		}
		post.Title = title
		post.Slug = s
	}
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return nil, validationf("content", "content is required")
		}
		post.Content = *patch.Content
	}
	if patch.CategoryID != nil {
		if err := c.checkCategory(*patch.CategoryID); err != nil {
			return nil, err
		}
		post.CategoryID = *patch.CategoryID
	}
	if patch.Excerpt != nil {
		if err := validateExcerpt(*patch.Excerpt); err != nil {
			return nil, err
		}
		post.Excerpt = strings.TrimSpace(*patch.Excerpt)
	}
	if patch.FeaturedImage != nil {
		post.FeaturedImage = strings.TrimSpace(*patch.FeaturedImage)
	}
	if patch.Tags != nil {
		post.Tags = ParseTags(*patch.Tags)
	}
	if patch.IsPublished != nil {
		post.IsPublished = *patch.IsPublished
	}

	updated, err := c.posts.Update(post)
	if err != nil {
		return nil, c.translateWriteError(err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// Delete removes a post owned by the calling user. The post row and its
// comments go in a single statement; there is no partial state.
func (c *Content) Delete(userID, postID uuid.UUID) error {
	post, err := c.posts.FindByID(postID)
	if err != nil {
		return storage(err)
	}
	if post == nil {
		return ErrNotFound
	}
	if post.AuthorID != userID {
		return ErrForbidden
	}

	deleted, err := c.posts.Delete(postID)
	if err != nil {
		return storage(err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// AddComment appends a comment by any authenticated user to a post.
func (c *Content) AddComment(userID, postID uuid.UUID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationf("content", "comment content is required")
	}

	post, err := c.posts.FindByID(postID)
	if err != nil {
		return nil, storage(err)
	}
	if post == nil {
		return nil, ErrNotFound
	}

	comment, err := c.posts.AddComment(postID, userID, content)
	if err != nil {
		if isForeignKeyViolation(err) {
			// Post deleted between lookup and append.
			return nil, ErrNotFound
		}
		return nil, storage(err)
	}
	return comment, nil
}

// find resolves a post by either identifier representation.
func (c *Content) find(ident Identifier) (*models.Post, error) {
	var (
		post *models.Post
		err  error
	)
	if ident.byID {
		post, err = c.posts.FindByID(ident.id)
	} else {
		post, err = c.posts.FindBySlug(ident.slug)
	}
	if err != nil {
		return nil, storage(err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// checkCategory verifies the referenced category exists at write time.
func (c *Content) checkCategory(id uuid.UUID) error {
	cat, err := c.categories.FindByID(id)
	if err != nil {
		return storage(err)
	}
	if cat == nil {
		return ErrInvalidCategory
	}
	return nil
}

// translateWriteError maps store constraint failures on post writes to
// domain kinds.
func (c *Content) translateWriteError(err error) error {
	switch {
	case isUniqueViolation(err):
		return validationf("title", "a post with this title already exists")
	case isForeignKeyViolation(err):
		// Category deleted between the existence check and the write.
		return ErrInvalidCategory
	default:
		return storage(err)
	}
}

func validateTitle(title string) error {
	if title == "" {
		return validationf("title", "title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return validationf("title", "title cannot be more than %d characters", maxTitleLen)
	}
	return nil
}

func validateExcerpt(excerpt string) error {
	if utf8.RuneCountInString(strings.TrimSpace(excerpt)) > maxExcerptLen {
		return validationf("excerpt", "excerpt cannot be more than %d characters", maxExcerptLen)
	}
	return nil
}
