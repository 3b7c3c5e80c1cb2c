// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import "github.com/google/uuid"

// Identifier names a category or post either by its opaque id or by its
// slug. The format is sniffed once at the API boundary; lookups dispatch
// on the representation instead of re-guessing per endpoint.
type Identifier struct {
	id   uuid.UUID
	slug string
	byID bool
}

// ParseIdentifier classifies s: anything that parses as a UUID is an id,
// every other string is a slug.
func ParseIdentifier(s string) Identifier {
	if id, err := uuid.Parse(s); err == nil {
		return Identifier{id: id, byID: true}
	}
	return Identifier{slug: s}
}

// ByID builds an Identifier from a known id.
func ByID(id uuid.UUID) Identifier {
	return Identifier{id: id, byID: true}
}

// String returns the original textual form.
func (i Identifier) String() string {
	if i.byID {
		return i.id.String()
	}
	return i.slug
}
