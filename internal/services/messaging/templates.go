package messaging

import "fmt"

// MissingDocsSMS is the text sent when an application arrives with no
// documents attached.
func MissingDocsSMS(businessName string) string {
	return fmt.Sprintf(
		"Thanks for your funding application for %s. We still need your supporting documents: "+
			"please upload your last 6 months of bank statements to keep things moving.",
		businessName)
}

// SubmissionReceivedEmail is the confirmation body sent on finalize.
func SubmissionReceivedEmail(firstName, businessName, externalID string) (subject, body string) {
	subject = fmt.Sprintf("Application %s received", externalID)
	body = fmt.Sprintf(
		"Hi %s,\n\nWe have received your funding application for %s (reference %s). "+
			"A member of our team will review it shortly.\n\nBoreal Financial",
		firstName, businessName, externalID)
	return subject, body
}
