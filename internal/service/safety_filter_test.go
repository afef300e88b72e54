package service

import (
	"strings"
	"testing"

	"fiilar/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestSafetyFilter_Check(t *testing.T) {
	filter := NewSafetyFilter()

	tests := []struct {
		name    string
		content string
		safe    bool
		reason  domain.SafetyReason
	}{
		{
			name:    "plain message passes",
			content: "Hi! Is the apartment available for next weekend?",
			safe:    true,
		},
		{
			name:    "price does not read as phone number",
			content: "The total would be 34000 for three nights.",
			safe:    true,
		},
		{
			name:    "denylisted term",
			content: "This is not a scam, I promise",
			reason:  domain.SafetyReasonInappropriate,
		},
		{
			name:    "denylisted term is case insensitive",
			content: "Let's take this OFF THE PLATFORM",
			reason:  domain.SafetyReasonInappropriate,
		},
		{
			name:    "email address",
			content: "Reach me at host@example.com instead",
			reason:  domain.SafetyReasonContactInfo,
		},
		{
			name:    "phone number with separators",
			content: "Call me on +234 801-234-5678",
			reason:  domain.SafetyReasonContactInfo,
		},
		{
			name:    "contact keyword",
			content: "Do you have WhatsApp?",
			reason:  domain.SafetyReasonContactInfo,
		},
		{
			name:    "phone number mention without digits",
			content: "Send me your phone number please",
			reason:  domain.SafetyReasonContactInfo,
		},
		{
			name:    "oversized message is spam",
			content: strings.Repeat("a", 2001),
			reason:  domain.SafetyReasonSpam,
		},
		{
			name:    "exactly at the length limit passes",
			content: strings.Repeat("a", 2000),
			safe:    true,
		},
		{
			name:    "denylist wins over contact info",
			content: "fraud, also here is my email: a@b.co",
			reason:  domain.SafetyReasonInappropriate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.Check(tt.content)
			assert.Equal(t, tt.safe, result.Safe)
			if !tt.safe {
				assert.Equal(t, tt.reason, result.Reason)
			}
		})
	}
}

func TestSafetyFilter_ShortDigitRunsPass(t *testing.T) {
	filter := NewSafetyFilter()

	// Six digits is below the phone threshold.
	result := filter.Check("My flight lands at 12:3045")
	assert.True(t, result.Safe)
}
