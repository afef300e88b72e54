package service

import (
	"regexp"
	"strings"

	"fiilar/internal/core/domain"
)

// Message content longer than this is treated as spam.
const maxMessageLength = 2000

// Denylist of terms that block a message outright.
var inappropriateTerms = []string{
	"scam",
	"fraud",
	"money laundering",
	"drugs",
	"weapon",
	"escort",
	"pay outside",
	"off the platform",
	"off-platform",
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	// Seven or more digits, allowing common separators, reads as a phone number.
	phonePattern = regexp.MustCompile(`(\+?\d[\d\s\-().]{5,}\d)`)
)

// Literal mentions that signal an attempt to move contact off-platform.
var contactKeywords = []string{
	"whatsapp",
	"telegram",
	"phone number",
	"email address",
}

// KeywordSafetyFilter implements ports.SafetyFilter with substring and
// pattern heuristics. Checks run in order; the first match wins.
type KeywordSafetyFilter struct{}

// NewSafetyFilter creates a new KeywordSafetyFilter.
func NewSafetyFilter() *KeywordSafetyFilter {
	return &KeywordSafetyFilter{}
}

// Check classifies message content before it is recorded.
func (f *KeywordSafetyFilter) Check(content string) domain.SafetyResult {
	lowered := strings.ToLower(content)

	for _, term := range inappropriateTerms {
		if strings.Contains(lowered, term) {
			return domain.SafetyResult{Safe: false, Reason: domain.SafetyReasonInappropriate}
		}
	}

	if emailPattern.MatchString(content) || containsPhoneNumber(content) {
		return domain.SafetyResult{Safe: false, Reason: domain.SafetyReasonContactInfo}
	}
	for _, kw := range contactKeywords {
		if strings.Contains(lowered, kw) {
			return domain.SafetyResult{Safe: false, Reason: domain.SafetyReasonContactInfo}
		}
	}

	if len(content) > maxMessageLength {
		return domain.SafetyResult{Safe: false, Reason: domain.SafetyReasonSpam}
	}

	return domain.SafetyResult{Safe: true}
}

// containsPhoneNumber requires at least seven digits in the matched run so
// prices and dates do not trip the filter.
func containsPhoneNumber(content string) bool {
	for _, match := range phonePattern.FindAllString(content, -1) {
		digits := 0
		for _, r := range match {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 7 {
			return true
		}
	}
	return false
}
