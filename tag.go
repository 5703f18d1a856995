package bookmarkai

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeTags cleans candidate tags produced for a bookmark.
//
// Each tag is lowercased, trimmed and has inner whitespace collapsed. Empty
// tags, tags longer than MaxTagLength characters and BannedTags are dropped.
// Tags that fold to the same key (case, whitespace, '-' and '_' ignored) are
// merged, and a tag that folds onto an entry in vocabulary takes the
// vocabulary's spelling so a user's tag cloud does not fragment. At most
// MaxTags tags are returned, in order of first appearance.
func NormalizeTags(candidates, vocabulary []string) []string {
	known := make(map[string]string, len(vocabulary))
	for _, v := range vocabulary {
		tag := cleanTag(v)
		if tag == "" {
			continue
		}
		if _, ok := known[foldTag(tag)]; !ok {
			known[foldTag(tag)] = tag
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	tags := make([]string, 0, len(candidates))
	for _, c := range candidates {
		tag := cleanTag(c)
		if tag == "" || utf8.RuneCountInString(tag) > MaxTagLength || IsBannedTag(tag) {
			continue
		}

		key := foldTag(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if existing, ok := known[key]; ok {
			tag = existing
		}
		tags = append(tags, tag)

		if len(tags) == MaxTags {
			break
		}
	}
	return tags
}

// IsBannedTag reports whether tag is a generic term that is never stored.
func IsBannedTag(tag string) bool {
	tag = cleanTag(tag)
	for _, b := range BannedTags {
		if tag == b {
			return true
		}
	}
	return false
}

// cleanTag lowercases tag, trims it and collapses inner whitespace.
func cleanTag(tag string) string {
	return strings.Join(strings.Fields(strings.ToLower(tag)), " ")
}

// foldTag returns the key under which near-identical tags are merged.
func foldTag(tag string) string {
	return strings.Join(strings.FieldsFunc(tag, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	}), " ")
}
