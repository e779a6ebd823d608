// Package langdetect names the language of a document so results can be
// grouped and reported by language. It uses go-enry, preferring the cheap
// filename signals over content classification.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// Detect returns the lowercase language name for the document at path.
func Detect(path string, content []byte) string {
	base := filepath.Base(path)

	if lang, safe := enry.GetLanguageByFilename(base); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByExtension(base); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	// Ambiguous extension or none at all; let enry weigh the content.
	if len(content) > 0 {
		if lang := enry.GetLanguage(base, content); lang != "" {
			return normalize(lang)
		}
	}
	return Text
}

// IsBinary reports whether content looks like binary data rather than text.
func IsBinary(content []byte) bool {
	return enry.IsBinary(content)
}

func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
