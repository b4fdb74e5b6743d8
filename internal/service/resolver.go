package service

import (
	"net/url"
	"strings"
)

// QueryPlaceholder marks where the search term is substituted into a
// configured action URL template.
const QueryPlaceholder = "{query}"

// encodeQueryComponent percent-encodes a search term for embedding in
// a URL. Spaces encode as %20, not +, so the result is valid in any
// URL component.
func encodeQueryComponent(term string) string {
	return strings.ReplaceAll(url.QueryEscape(term), "+", "%20")
}

// ResolveSearchURL builds the destination URL for a search term from
// the configured template. If the template contains QueryPlaceholder,
// its first occurrence is replaced with the encoded term; otherwise
// the encoded term is appended. The template itself is never
// re-encoded.
func ResolveSearchURL(template, term string) string {
	encoded := encodeQueryComponent(term)
	if strings.Contains(template, QueryPlaceholder) {
		return strings.Replace(template, QueryPlaceholder, encoded, 1)
	}
	return template + encoded
}
