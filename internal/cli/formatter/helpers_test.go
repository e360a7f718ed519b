package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	assert.Equal(t, "never", HumanTimestamp(nil, now))
	assert.Equal(t, "never", HumanTimestamp(&time.Time{}, now))
	assert.Equal(t, "Just now", HumanTimestamp(at(-10*time.Second), now))
	assert.Equal(t, "5m ago", HumanTimestamp(at(-5*time.Minute), now))
	assert.Equal(t, "2h ago", HumanTimestamp(at(-2*time.Hour), now))
	assert.Equal(t, "3d ago", HumanTimestamp(at(-72*time.Hour), now))
	assert.Equal(t, "Jun 11, 2025", HumanTimestamp(at(24*time.Hour), now))
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12500, "12,500"},
		{1000000, "1,000,000"},
		{-2500, "-2,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCount(tt.in), "FormatCount(%d)", tt.in)
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0h", FormatHours(0))
	assert.Equal(t, "2.5h", FormatHours(2.5))
	assert.Equal(t, "1.25h", FormatHours(1.25))
	assert.Equal(t, "3h", FormatHours(3))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdefgh", stripANSI(TruncID("abcdefgh-1234")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestRenderBox(t *testing.T) {
	got := stripANSI(RenderBox("kneeling", "content"))
	assert.Contains(t, got, "KNEELING")
	assert.Contains(t, got, "content")
	assert.Contains(t, got, "╭")

	untitled := stripANSI(RenderBox("", "only"))
	assert.Contains(t, untitled, "only")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	got := stripANSI(RenderTable(
		[]string{"NAME", "POINTS"},
		[][]string{{"Alice", "10"}, {"Bartholomew", "2,500"}},
	))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Equal(t, strings.Index(lines[0], "POINTS"), strings.Index(lines[2], "10"))
	assert.Equal(t, strings.Index(lines[0], "POINTS"), strings.Index(lines[3], "2,500"))
}

func TestRenderTable_ShortRowsAndEmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
	got := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"only"}}))
	assert.Contains(t, got, "only")
}
