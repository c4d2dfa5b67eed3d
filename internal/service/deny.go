package service

import "strings"

// suspiciousTerms flag obviously fake or placeholder company names.
// Matching is on whole lowercase words so "Protest Brewing" is not
// caught by "test".
var suspiciousTerms = map[string]bool{
	"test":    true,
	"demo":    true,
	"example": true,
	"sample":  true,
	"dummy":   true,
	"fake":    true,
	"asdf":    true,
	"qwerty":  true,
}

func suspiciousName(name string) bool {
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if suspiciousTerms[strings.Trim(word, ".,;:!?\"'()")] {
			return true
		}
	}
	return false
}
