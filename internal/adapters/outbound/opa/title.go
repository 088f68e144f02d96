package opa

import (
	"strings"
	"unicode"

	"github.com/complyview/complyview/internal/domain"
	"github.com/fatih/camelcase"
)

// humanize turns a package segment such as "public_bucketACL" or
// "denyPublicBucket" into a title ("Public Bucket ACL", "Deny Public Bucket").
func humanize(name string) string {
	var words []string
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' }) {
		if !hasUpperAfterFirst(part) {
			words = append(words, part)
			continue
		}
		words = append(words, camelcase.Split(part)...)
	}
	for i, w := range words {
		words[i] = domain.Capitalize(w)
	}
	return strings.Join(words, " ")
}

func hasUpperAfterFirst(s string) bool {
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
