// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

// Posts groups the blog post HTTP handlers.
type Posts struct {
	content *service.Content
}

// NewPosts creates a new Posts handler group.
func NewPosts(content *service.Content) *Posts {
	return &Posts{content: content}
}

// List returns a page of posts, newest first, optionally filtered by
// category. Query parameters: page, limit, category.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	var categoryID *uuid.UUID
	if raw := q.Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, r, service.ErrInvalidCategory)
			return
		}
		categoryID = &id
	}

	result, err := h.content.List(page, limit, categoryID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, envelope{
		"success":     true,
		"count":       len(result.Items),
		"total":       result.Total,
		"totalPages":  result.TotalPages,
		"currentPage": result.CurrentPage,
		"data":        result.Items,
	})
}

// Get returns one post by id or slug, with author, category, and
// comments populated. Each read counts as a view.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	ident := service.ParseIdentifier(chi.URLParam(r, "idOrSlug"))

	post, err := h.content.Get(ident)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, post)
}

// Create adds a new post authored by the authenticated caller.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())

	var input service.PostInput
	if !decodeBody(w, r, &input) {
		return
	}

	post, err := h.content.Create(ident.UserID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, post)
}

// Update patches a post. Only the author may modify it.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, service.ErrNotFound)
		return
	}

	var patch service.PostPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	post, err := h.content.Update(ident.UserID, id, patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, post)
}

// Delete removes a post and its comments. Only the author may delete it.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, service.ErrNotFound)
		return
	}

	if err := h.content.Delete(ident.UserID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, envelope{"message": "Post deleted"})
}

// AddComment appends a comment to a post on behalf of the caller.
func (h *Posts) AddComment(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, service.ErrNotFound)
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &input) {
		return
	}

	comment, err := h.content.AddComment(ident.UserID, id, input.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, comment)
}
