// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package urlnorm rewrites URLs embedded in content bodies between absolute
// and site-relative forms. Relative form is canonical for storage so a site
// can change its domain without rewriting every stored body.
package urlnorm

import (
	"regexp"
	"strings"
)

var (
	// htmlURLAttr matches href/src attributes with single or double quotes.
	htmlURLAttr = regexp.MustCompile(`(href|src)=("|')([^"']*)("|')`)
	// markdownLink matches the URL part of [text](url) and ![alt](url).
	markdownLink = regexp.MustCompile(`(\]\()([^)\s]+)(\))`)
)

// ToRelative rewrites every embedded URL that points at the given site to
// its root-relative form. URLs on other hosts are left alone.
func ToRelative(body, siteURL string) string {
	base := strings.TrimSuffix(siteURL, "/")
	if base == "" {
		return body
	}

	rel := func(u string) string {
		if u == base {
			return "/"
		}
		if strings.HasPrefix(u, base+"/") {
			return u[len(base):]
		}
		return u
	}

	body = htmlURLAttr.ReplaceAllStringFunc(body, func(m string) string {
		parts := htmlURLAttr.FindStringSubmatch(m)
		return parts[1] + "=" + parts[2] + rel(parts[3]) + parts[4]
	})
	return markdownLink.ReplaceAllStringFunc(body, func(m string) string {
		parts := markdownLink.FindStringSubmatch(m)
		return parts[1] + rel(parts[2]) + parts[3]
	})
}

// ToAbsolute expands root-relative URLs against the given site URL. Used on
// the read-for-render path; anchors, protocol-relative URLs, and absolute
// URLs are untouched.
func ToAbsolute(body, siteURL string) string {
	base := strings.TrimSuffix(siteURL, "/")
	if base == "" {
		return body
	}

	abs := func(u string) string {
		if strings.HasPrefix(u, "/") && !strings.HasPrefix(u, "//") {
			return base + u
		}
		return u
	}

	body = htmlURLAttr.ReplaceAllStringFunc(body, func(m string) string {
		parts := htmlURLAttr.FindStringSubmatch(m)
		return parts[1] + "=" + parts[2] + abs(parts[3]) + parts[4]
	})
	return markdownLink.ReplaceAllStringFunc(body, func(m string) string {
		parts := markdownLink.FindStringSubmatch(m)
		return parts[1] + abs(parts[2]) + parts[3]
	})
}
