// Package store persists draft and saved-role documents as JSON blobs in a
// Google Cloud Storage bucket, keyed by a slug derived from title and submitter.
package store

import (
	"regexp"
	"strings"
)

// maxSlugLen bounds the title portion of a derived slug.
const maxSlugLen = 60

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes free text into a URL- and filename-safe identifier:
// lowercase, runs of non-alphanumerics collapsed to single hyphens, no
// leading or trailing hyphen, at most 60 characters.
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = nonAlphanumeric.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	return slug
}

// SanitizeSubmitter derives a filename-safe identifier from a submitter email:
// the local part with dots replaced by hyphens.
func SanitizeSubmitter(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	local = strings.ToLower(strings.ReplaceAll(local, ".", "-"))
	return strings.Trim(nonAlphanumeric.ReplaceAllString(local, "-"), "-")
}

// DocumentSlug derives the blob key stem for a document from its title and
// the submitter identity. The same title and submitter always map to the same
// slug, which is what makes draft promotion (save-role deletes the matching
// draft) work.
func DocumentSlug(title, savedBy string) string {
	slug := Slugify(title)
	submitter := SanitizeSubmitter(savedBy)
	if submitter == "" {
		return slug
	}
	return slug + "--" + submitter
}
