package domain

// SafetyReason classifies why message content was blocked.
type SafetyReason string

const (
	SafetyReasonInappropriate SafetyReason = "inappropriate_content"
	SafetyReasonContactInfo   SafetyReason = "contact_info_sharing"
	SafetyReasonSpam          SafetyReason = "spam"
)

// SafetyResult is the outcome of classifying message content before send.
// Reason is empty when Safe is true.
type SafetyResult struct {
	Safe   bool         `json:"safe"`
	Reason SafetyReason `json:"reason,omitempty"`
}
