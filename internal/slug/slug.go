// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings
// and collision-free resolution against already-stored slugs.
package slug

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// maxAttempts bounds the suffix-counter retry loop. Past this ceiling the
// resolver gives up with ErrExhausted rather than scanning forever.
const maxAttempts = 100

// ErrExhausted is returned when no unique slug could be found within the
// retry budget. Callers surface it as a conflict.
var ErrExhausted = errors.New("slug: retry budget exhausted")

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Taken reports whether a candidate slug is already in use. The exclude id
// removes the item's own row from the scan so re-saving an unchanged slug is
// not a collision. Implementations must query inside the caller's
// transaction so concurrent creators are observed.
type Taken func(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)

// Resolve normalizes the candidate and appends -2, -3, … until the result is
// unique according to taken. Slug uniqueness is status-independent: drafts
// and published items share one namespace.
func Resolve(ctx context.Context, candidate string, exclude uuid.UUID, taken Taken) (string, error) {
	base := Generate(candidate)
	if base == "" {
		// Titles made entirely of stripped characters still need a slug.
		base = uuid.NewString()[:8]
	}

	for i := 1; i <= maxAttempts; i++ {
		s := base
		if i > 1 {
			s = fmt.Sprintf("%s-%d", base, i)
		}
		used, err := taken(ctx, s, exclude)
		if err != nil {
			return "", fmt.Errorf("slug lookup: %w", err)
		}
		if !used {
			return s, nil
		}
	}
	return "", ErrExhausted
}
