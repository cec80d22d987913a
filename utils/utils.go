package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

func GenerateUuid() string {
	uuid1, err := uuid.NewUUID()
	if err != nil {
		panic("Failed to generate UUID")
	}

	return uuid1.String()
}

const slugMaxLength = 40
const slugSuffixLength = 6
const slugSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSlug derives a URL-safe share slug from a model name: lowercased,
// runs of non-alphanumeric characters collapsed to single hyphens, truncated
// and suffixed with a short random disambiguator so that identical names
// never collide.
func GenerateSlug(name string) string {
	var builder strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			builder.WriteRune('-')
			lastHyphen = true
		}

		if builder.Len() >= slugMaxLength {
			break
		}
	}

	slug := strings.Trim(builder.String(), "-")
	if slug == "" {
		slug = "model"
	}

	return slug + "-" + randomSlugSuffix()
}

func randomSlugSuffix() string {
	suffix := make([]byte, slugSuffixLength)
	for i := range suffix {
		index, err := rand.Int(rand.Reader, big.NewInt(int64(len(slugSuffixAlphabet))))
		if err != nil {
			panic("Failed to generate slug suffix")
		}
		suffix[i] = slugSuffixAlphabet[index.Int64()]
	}

	return string(suffix)
}
