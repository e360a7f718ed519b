package formatter

import (
	"time"

	"github.com/qkariin/queendom/internal/domain"
)

// SubmissionStatusPill returns a colored status indicator.
func SubmissionStatusPill(status domain.SubmissionStatus) string {
	switch status {
	case domain.SubmissionPending:
		return StyleYellow.Render("○ Pending")
	case domain.SubmissionApproved:
		return StyleGreen.Render("✔ Approved")
	case domain.SubmissionRejected:
		return StyleRed.Render("✖ Rejected")
	case domain.SubmissionFailed:
		return StyleRed.Render("⊘ Failed")
	default:
		return StyleDim.Render(string(status))
	}
}

// FormatSubmissionList renders submissions newest first as given.
func FormatSubmissionList(subs []*domain.Submission, now time.Time) string {
	if len(subs) == 0 {
		return Dim("No submissions.") + "\n"
	}
	headers := []string{"ID", "KIND", "STATUS", "SUBMITTED", "PROOF"}
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		at := s.SubmittedAt
		rows = append(rows, []string{
			TruncID(s.ID),
			string(s.Kind),
			SubmissionStatusPill(s.Status),
			at.In(now.Location()).Format("2006-01-02 15:04") + " " + Dim(HumanTimestamp(&at, now)),
			domain.CoalesceStr(s.ProofURL, s.Note, "-"),
		})
	}
	return RenderTable(headers, rows)
}
