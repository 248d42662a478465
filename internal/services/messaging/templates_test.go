package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingDocsSMS(t *testing.T) {
	msg := MissingDocsSMS("Acme Co")
	assert.Contains(t, msg, "Acme Co")
	assert.Contains(t, msg, "6 months of bank statements")
	// Single SMS segment budget is tight; keep the template well under
	// the 1600-character provider limit.
	assert.Less(t, len(msg), 320)
}

func TestSubmissionReceivedEmail(t *testing.T) {
	subject, body := SubmissionReceivedEmail("Ada", "Acme Co", "APP-1700000000-B3A3F1C2")

	assert.Equal(t, "Application APP-1700000000-B3A3F1C2 received", subject)
	assert.Contains(t, body, "Hi Ada,")
	assert.Contains(t, body, "Acme Co")
	assert.Contains(t, body, "APP-1700000000-B3A3F1C2")
}
