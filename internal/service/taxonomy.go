// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// Validation limits for category fields.
const (
	maxCategoryNameLen = 50
	maxDescriptionLen  = 200

	// recentPostsLimit is how many posts a category detail carries.
	recentPostsLimit = 10
)

// hexColor matches #RGB and #RRGGBB display colors.
var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Taxonomy implements category operations: listing with post counts,
// id-or-slug lookup, and admin-gated CRUD with referential integrity.
// Role enforcement happens at the route boundary, not here.
type Taxonomy struct {
	categories *store.CategoryStore
	posts      *store.PostStore
}

// NewTaxonomy returns a Taxonomy service over the given stores.
func NewTaxonomy(categories *store.CategoryStore, posts *store.PostStore) *Taxonomy {
	return &Taxonomy{categories: categories, posts: posts}
}

// CategoryInput carries the fields for creating a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CategoryPatch carries a partial category update. Nil fields are left
// untouched; present fields are re-validated.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// CategoryDetail is a category together with its most recent posts.
type CategoryDetail struct {
	Category models.Category `json:"category"`
	Posts    []models.Post   `json:"posts"`
}

// List returns all categories ordered by name, each annotated with its
// current post count.
func (t *Taxonomy) List() ([]models.Category, error) {
	items, err := t.categories.List()
	if err != nil {
		return nil, storage(err)
	}
	return items, nil
}

// Get resolves a category by id or slug and loads up to ten of its most
// recent posts.
func (t *Taxonomy) Get(ident Identifier) (*CategoryDetail, error) {
	var (
		cat *models.Category
		err error
	)
	if ident.byID {
		cat, err = t.categories.FindByID(ident.id)
	} else {
		cat, err = t.categories.FindBySlug(ident.slug)
	}
	if err != nil {
		return nil, storage(err)
	}
	if cat == nil {
		return nil, ErrNotFound
	}

	posts, err := t.posts.RecentByCategory(cat.ID, recentPostsLimit)
	if err != nil {
		return nil, storage(err)
	}
	return &CategoryDetail{Category: *cat, Posts: posts}, nil
}

// Create validates the input, derives the slug from the name, and inserts
// the category. Name collisions in any casing fail with ErrDuplicateName.
func (t *Taxonomy) Create(in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}

	color := in.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}

	s := slug.Generate(name)
	if s == "" {
		return nil, validationf("name", "name must contain at least one letter or digit")
	}

	created, err := t.categories.Create(&models.Category{
		Name:        name,
		Slug:        s,
		Description: strings.TrimSpace(in.Description),
		Color:       color,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, storage(err)
	}
	return created, nil
}

// Update applies a partial patch. Validators run only for the fields
// present; the slug is re-derived whenever the name changes.
func (t *Taxonomy) Update(id uuid.UUID, patch CategoryPatch) (*models.Category, error) {
	cat, err := t.categories.FindByID(id)
	if err != nil {
		return nil, storage(err)
	}
	if cat == nil {
		return nil, ErrNotFound
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateCategoryName(name); err != nil {
			return nil, err
		}
		s := slug.Generate(name)
		if s == "" {
			return nil, validationf("name", "name must contain at least one letter or digit")
		}
		cat.Name = name
		cat.Slug = s
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return nil, err
		}
		cat.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Color != nil {
		if err := validateColor(*patch.Color); err != nil {
			return nil, err
		}
		cat.Color = *patch.Color
	}

	updated, err := t.categories.Update(cat)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, storage(err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// Delete removes a category unless posts still reference it. The delete
// statement itself re-checks for dependents, so the count read here only
// shapes the error and cannot race a concurrent post creation into
// orphaning anything.
func (t *Taxonomy) Delete(id uuid.UUID) error {
	cat, err := t.categories.FindByID(id)
	if err != nil {
		return storage(err)
	}
	if cat == nil {
		return ErrNotFound
	}

	count, err := t.categories.CountPosts(id)
	if err != nil {
		return storage(err)
	}
	if count > 0 {
		return &DependentsError{Count: count}
	}

	deleted, err := t.categories.DeleteIfUnreferenced(id)
	if err != nil {
		return storage(err)
	}
	if !deleted {
		// Either the category vanished or a post appeared since the
		// count. Re-check to report the right kind.
		count, err := t.categories.CountPosts(id)
		if err != nil {
			return storage(err)
		}
		if count > 0 {
			return &DependentsError{Count: count}
		}
		return ErrNotFound
	}
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return validationf("name", "name is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return validationf("name", "name cannot be more than %d characters", maxCategoryNameLen)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) > maxDescriptionLen {
		return validationf("description", "description cannot be more than %d characters", maxDescriptionLen)
	}
	return nil
}

func validateColor(color string) error {
	if !hexColor.MatchString(color) {
		return validationf("color", "color must be a hex value like #3B82F6")
	}
	return nil
}
