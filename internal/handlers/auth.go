// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"inkwell/internal/identity"
	"inkwell/internal/middleware"
	"inkwell/internal/store"
)

const minPasswordLen = 6

// Auth groups the authentication HTTP handlers. It backs the identity
// boundary: register and login issue bearer tokens, logout revokes them.
type Auth struct {
	users  *store.UserStore
	tokens *identity.TokenStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, tokens *identity.TokenStore) *Auth {
	return &Auth{users: users, tokens: tokens}
}

type credentialsBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account with the user role and issues a token.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if !decodeBody(w, r, &body) {
		return
	}

	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))

	if msg := validateCredentials(body); msg != "" {
		respond(w, http.StatusBadRequest, envelope{"success": false, "error": msg})
		return
	}

	existing, err := a.users.FindByEmail(body.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if existing != nil {
		respond(w, http.StatusBadRequest, envelope{"success": false, "error": "Email already registered"})
		return
	}

	user, err := a.users.Create(body.Name, body.Email, body.Password, string(identity.RoleUser))
	if err != nil {
		respondError(w, r, err)
		return
	}

	a.issueToken(w, r, &identity.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   identity.Role(user.Role),
	}, http.StatusCreated)
}

// Login verifies credentials and issues a token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if !decodeBody(w, r, &body) {
		return
	}

	body.Email = strings.TrimSpace(strings.ToLower(body.Email))

	user, err := a.users.FindByEmail(body.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, body.Password) {
		respond(w, http.StatusUnauthorized, envelope{"success": false, "error": "Invalid email or password"})
		return
	}

	role, ok := identity.ParseRole(user.Role)
	if !ok {
		slog.Error("user has unknown role", "user_id", user.ID, "role", user.Role)
		respond(w, http.StatusInternalServerError, envelope{"success": false, "error": "Server Error"})
		return
	}

	a.issueToken(w, r, &identity.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   role,
	}, http.StatusOK)
}

// Me returns the authenticated caller's identity.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())
	respondData(w, http.StatusOK, ident)
}

// Logout revokes the caller's bearer token.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	if err := a.tokens.Revoke(r.Context(), token); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, envelope{"message": "Logged out"})
}

// issueToken stores a token for the identity and writes the login payload.
func (a *Auth) issueToken(w http.ResponseWriter, r *http.Request, ident *identity.Identity, status int) {
	token, err := a.tokens.Issue(r.Context(), ident)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondData(w, status, envelope{
		"token": token,
		"user":  ident,
	})
}

// validateCredentials checks registration input and returns the first
// problem found, or "".
func validateCredentials(body credentialsBody) string {
	if body.Name == "" {
		return "Name is required"
	}
	if body.Email == "" || !strings.Contains(body.Email, "@") {
		return "A valid email is required"
	}
	if len(body.Password) < minPasswordLen {
		return "Password must be at least 6 characters"
	}
	return ""
}
