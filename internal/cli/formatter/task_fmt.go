package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/qkariin/queendom/internal/domain"
)

// TaskStatusPill returns a colored task status, with the failure reason.
func TaskStatusPill(t *domain.Task) string {
	switch t.Status {
	case domain.TaskActive:
		return StyleYellow.Render("● Active")
	case domain.TaskSubmitted:
		return StyleGreen.Render("✔ Submitted")
	case domain.TaskFailed:
		return StyleRed.Render("✖ Failed (" + string(t.FailReason) + ")")
	case domain.TaskAtoned:
		return StylePurple.Render("↺ Atoned")
	default:
		return StyleDim.Render(string(t.Status))
	}
}

// FormatCountdown renders a duration as HH:MM:SS, clamped at zero.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}

// FormatTask renders one task card with its deadline countdown.
func FormatTask(t *domain.Task, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", Bold(t.Text))
	fmt.Fprintf(&b, "%s %s\n", Dim("Status  "), TaskStatusPill(t))
	if t.Category == domain.TaskRedemption {
		fmt.Fprintf(&b, "%s %s\n", Dim("Category"), StylePurple.Render(string(t.Category)))
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Assigned"), t.AssignedAt.In(now.Location()).Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "%s %s", Dim("Deadline"), t.Deadline.In(now.Location()).Format("2006-01-02 15:04"))
	if t.IsActive() {
		fmt.Fprintf(&b, "\n%s %s", Dim("Left    "), StyleGold.Render(FormatCountdown(t.Remaining(now))))
	}
	return RenderBox("Directive", b.String())
}

// FormatTaskList renders a task history, newest first as given.
func FormatTaskList(tasks []*domain.Task, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks yet.") + "\n"
	}
	headers := []string{"ID", "STATUS", "TASK", "ASSIGNED"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		at := t.AssignedAt
		rows = append(rows, []string{
			TruncID(t.ID),
			TaskStatusPill(t),
			t.Text,
			Dim(HumanTimestamp(&at, now)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatQueue numbers queued tasks in draw order, starting at 1.
func FormatQueue(items []*domain.QueueItem) string {
	if len(items) == 0 {
		return Dim("Queue is empty.") + "\n"
	}
	headers := []string{"#", "ID", "TASK"}
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		rows = append(rows, []string{strconv.Itoa(i + 1), TruncID(it.ID), it.Text})
	}
	return RenderTable(headers, rows)
}

// FormatPurchaseList renders a purchase ledger and its total.
func FormatPurchaseList(purchases []*domain.Purchase, now time.Time) string {
	if len(purchases) == 0 {
		return Dim("No purchases.") + "\n"
	}
	headers := []string{"ITEM", "COST", "WHEN"}
	rows := make([][]string, 0, len(purchases))
	total := 0
	for _, p := range purchases {
		at := p.CreatedAt
		rows = append(rows, []string{p.Item, FormatCount(p.Cost), Dim(HumanTimestamp(&at, now))})
		total += p.Cost
	}
	return RenderTable(headers, rows) + fmt.Sprintf("%s %s\n", Dim("Total"), StyleGold.Render(FormatCount(total)))
}
