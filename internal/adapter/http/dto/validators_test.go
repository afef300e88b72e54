package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := RegisterRequest{
		Email:       "  alice@example.com  ",
		Password:    "  pass1234  ",
		DisplayName: " Alice ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "alice@example.com", req.Email)
	assert.Equal(t, "pass1234", req.Password)
	assert.Equal(t, "Alice", req.DisplayName)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	reason := "guest <script>alert('x')</script> request"
	req := RefundRequest{
		Amount: 1000,
		Reason: reason,
	}
	SanitizeStruct(&req)

	assert.Contains(t, req.Reason, "&lt;script&gt;")
	assert.NotContains(t, req.Reason, "<script>")
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	id := "  5f1b2c3d-0000-0000-0000-000000000001  "
	req := StartConversationRequest{
		HostID:    "5f1b2c3d-0000-0000-0000-000000000002",
		ListingID: &id,
	}
	SanitizeStruct(&req)

	assert.Equal(t, "5f1b2c3d-0000-0000-0000-000000000001", *req.ListingID)
}

func TestSanitizeStruct_NilPointerIsNoOp(t *testing.T) {
	req := StartConversationRequest{
		HostID:    "5f1b2c3d-0000-0000-0000-000000000002",
		ListingID: nil,
	}
	SanitizeStruct(&req)
	assert.Nil(t, req.ListingID)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"txn-001",
		"REF_002",
		"a.b.c",
		"simple123",
		"ABC-def_GHI.123",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"ref 001",     // space
		"ref<001>",    // angle brackets
		"ref;DROP",    // semicolon
		"",            // empty
		"hello world", // space
		"ref\n001",    // newline
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestSanitizeStruct_CreateListingRequest(t *testing.T) {
	req := CreateListingRequest{
		Title:       "  Lekki Studio <b>deluxe</b>  ",
		Location:    " Lagos ",
		Description: "cosy",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "Lekki Studio &lt;b&gt;deluxe&lt;/b&gt;", req.Title)
	assert.Equal(t, "Lagos", req.Location)
	assert.Equal(t, "cosy", req.Description)
}
