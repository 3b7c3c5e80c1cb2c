// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/service"
)

// Categories groups the category taxonomy HTTP handlers.
type Categories struct {
	taxonomy *service.Taxonomy
}

// NewCategories creates a new Categories handler group.
func NewCategories(taxonomy *service.Taxonomy) *Categories {
	return &Categories{taxonomy: taxonomy}
}

// List returns all categories ordered by name, each with its post count.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.taxonomy.List()
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, len(categories), categories)
}

// Get returns one category by id or slug, with its most recent posts.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	ident := service.ParseIdentifier(chi.URLParam(r, "idOrSlug"))

	detail, err := h.taxonomy.Get(ident)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, detail)
}

// Create adds a new category. Admin only (enforced by the router).
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CategoryInput
	if !decodeBody(w, r, &input) {
		return
	}

	category, err := h.taxonomy.Create(input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, category)
}

// Update patches an existing category. Admin only.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, service.ErrNotFound)
		return
	}

	var patch service.CategoryPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	category, err := h.taxonomy.Update(id, patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, category)
}

// Delete removes a category with no posts attached. Admin only.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, service.ErrNotFound)
		return
	}

	if err := h.taxonomy.Delete(id); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, envelope{"message": "Category deleted"})
}
