package mailer

import "strings"

// Template is a canned candidate email. Subject and HTML accept the
// {name}, {position} and {company} placeholders.
type Template struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	HTML    string `json:"-"`
}

const (
	TemplateInterviewInvitation = "interview_invitation"
	TemplateRejectionPolite     = "rejection_polite"
	TemplateRequestMoreInfo     = "request_more_info"
	TemplateCustom              = "custom"
)

// Render substitutes the candidate placeholders into s.
func Render(s, name, position, company string) string {
	return strings.NewReplacer(
		"{name}", name,
		"{position}", position,
		"{company}", company,
	).Replace(s)
}

// Templates returns the canned templates in display order.
func Templates() []Template {
	return []Template{
		{
			Key:     TemplateInterviewInvitation,
			Name:    "Interview Invitation",
			Subject: "Interview Invitation - {position}",
			HTML:    interviewInvitationHTML,
		},
		{
			Key:     TemplateRejectionPolite,
			Name:    "Rejection (Polite)",
			Subject: "Update on Your Application - {position}",
			HTML:    rejectionPoliteHTML,
		},
		{
			Key:     TemplateRequestMoreInfo,
			Name:    "Request for More Info",
			Subject: "Additional Information Needed - {position}",
			HTML:    requestMoreInfoHTML,
		},
		{
			Key:     TemplateCustom,
			Name:    "Custom",
			Subject: "Regarding Your Application",
			HTML:    customHTML,
		},
	}
}

func TemplateByKey(key string) (Template, bool) {
	for _, t := range Templates() {
		if t.Key == key {
			return t, true
		}
	}
	return Template{}, false
}

const interviewInvitationHTML = `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #667eea;">Interview Invitation</h2>

        <p>Dear {name},</p>

        <p>We are pleased to inform you that your application for the position of <strong>{position}</strong>
        at {company} has been shortlisted.</p>

        <p>We would like to invite you for an interview to discuss your application further.</p>

        <div style="background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
            <p><strong>Interview Details:</strong></p>
            <ul>
                <li>Date: [To be confirmed]</li>
                <li>Time: [To be confirmed]</li>
                <li>Duration: 30-45 minutes</li>
                <li>Format: [Video Call / In-person]</li>
            </ul>
        </div>

        <p>Please reply to this email with your availability for the upcoming week.</p>

        <p>We look forward to speaking with you!</p>

        <p>Best regards,<br>
        <strong>{company} HR Team</strong></p>
    </div>
</body>
</html>`

const rejectionPoliteHTML = `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #667eea;">Application Update</h2>

        <p>Dear {name},</p>

        <p>Thank you for your interest in the <strong>{position}</strong> position at {company}
        and for taking the time to apply.</p>

        <p>After careful consideration, we regret to inform you that we will not be moving forward
        with your application at this time. We received many strong applications, and the competition
        was very competitive.</p>

        <p>We appreciate your interest in {company} and encourage you to apply for future openings
        that match your skills and experience.</p>

        <p>We wish you all the best in your job search and future professional endeavors.</p>

        <p>Best regards,<br>
        <strong>{company} HR Team</strong></p>
    </div>
</body>
</html>`

const requestMoreInfoHTML = `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #667eea;">Additional Information Required</h2>

        <p>Dear {name},</p>

        <p>Thank you for your application for the <strong>{position}</strong> position at {company}.</p>

        <p>We are reviewing your application and would like to request some additional information:</p>

        <div style="background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
            <ul>
                <li>Portfolio or work samples (if applicable)</li>
                <li>References (2-3 professional references)</li>
                <li>Expected salary range</li>
                <li>Earliest start date</li>
            </ul>
        </div>

        <p>Please send the requested information at your earliest convenience.</p>

        <p>Thank you for your cooperation!</p>

        <p>Best regards,<br>
        <strong>{company} HR Team</strong></p>
    </div>
</body>
</html>`

const customHTML = `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <p>Dear {name},</p>

        <p>Thank you for your application for the <strong>{position}</strong> position at {company}.</p>

        <p>[Your custom message here]</p>

        <p>Best regards,<br>
        <strong>{company} HR Team</strong></p>
    </div>
</body>
</html>`
