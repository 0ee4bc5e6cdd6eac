package translit

import (
	"strconv"
	"strings"

	gslug "github.com/gosimple/slug"
)

// SlugBase slugifies the normalized source text. When the source yields
// an empty slug (punctuation-only titles happen), it falls back to a
// placeholder token derived from the entity kind.
func SlugBase(source, kind string) string {
	base := gslug.Make(Normalize(source))
	if base == "" {
		base = "unnamed-" + strings.ToLower(kind)
	}
	return base
}

// UniqueSlug disambiguates base against the slugs already present for
// the same entity table. Only the bare base and base-<digits> variants
// count as collisions; the new suffix is the maximum existing numeric
// suffix plus one, with the bare base counting as suffix zero. Taking
// max+1 instead of probing upward keeps the result stable when earlier
// suffixes have been freed by deletions.
func UniqueSlug(base string, existing []string) string {
	maxSuffix := -1
	prefix := base + "-"
	for _, s := range existing {
		if s == base {
			if maxSuffix < 0 {
				maxSuffix = 0
			}
			continue
		}
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(s, prefix))
		if err != nil || n < 0 {
			continue
		}
		if n > maxSuffix {
			maxSuffix = n
		}
	}
	if maxSuffix < 0 {
		return base
	}
	return base + "-" + strconv.Itoa(maxSuffix+1)
}
