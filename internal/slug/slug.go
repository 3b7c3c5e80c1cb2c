// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonWord matches anything that isn't a word character or a space.
	nonWord = regexp.MustCompile(`[^\w ]+`)
	// spaceRun matches one or more consecutive spaces.
	spaceRun = regexp.MustCompile(` +`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
//
// A name or title made entirely of stripped symbols yields an empty slug;
// callers must reject those before persisting.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonWord.ReplaceAllString(result, "")
	result = spaceRun.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
