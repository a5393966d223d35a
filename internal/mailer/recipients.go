package mailer

import "github.com/google/uuid"

// Recipient is a ranked candidate considered for a notification batch.
type Recipient struct {
	ResumeID uuid.UUID
	Name     string
	Email    string
	Score    float64
	Approved bool
}

// SelectRecipients filters ranked candidates by score and approval and
// caps the batch size. Order is preserved so better candidates win the
// cap. Recipients without an email stay selected so the batch can
// report them as failures.
func SelectRecipients(candidates []Recipient, minScore float64, max int, approvedOnly bool) []Recipient {
	var out []Recipient
	for _, c := range candidates {
		if c.Score < minScore {
			continue
		}
		if approvedOnly && !c.Approved {
			continue
		}
		out = append(out, c)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
