package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/qkariin/queendom/internal/streak"
)

// timestampFlag is a pflag.Value accepting every timestamp form a submission
// record may carry: RFC3339, zone-less datetimes, plain dates and epoch
// milliseconds. Zone-less input is read in loc.
type timestampFlag struct {
	t   time.Time
	loc *time.Location
}

var _ pflag.Value = (*timestampFlag)(nil)

func newTimestampFlag(loc *time.Location) *timestampFlag {
	if loc == nil {
		loc = time.Local
	}
	return &timestampFlag{loc: loc}
}

func (f *timestampFlag) String() string {
	if f.t.IsZero() {
		return ""
	}
	return f.t.Format(time.RFC3339)
}

func (f *timestampFlag) Set(s string) error {
	t, ok := streak.ParseTimestamp(s, f.loc)
	if !ok {
		return fmt.Errorf("unrecognized timestamp %q", s)
	}
	f.t = t
	return nil
}

func (f *timestampFlag) Type() string {
	return "timestamp"
}

// Time returns the parsed value, or the zero time when the flag was not set.
func (f *timestampFlag) Time() time.Time {
	return f.t
}

// reviewStatusFlag restricts --status to the review outcomes.
type reviewStatusFlag struct {
	status string
}

var _ pflag.Value = (*reviewStatusFlag)(nil)

func (f *reviewStatusFlag) String() string { return f.status }

func (f *reviewStatusFlag) Set(s string) error {
	switch s {
	case "approve", "approved":
		f.status = "approve"
	case "reject", "rejected":
		f.status = "reject"
	case "fail", "failed":
		f.status = "fail"
	default:
		return fmt.Errorf("must be one of approve, reject, fail")
	}
	return nil
}

func (f *reviewStatusFlag) Type() string { return "status" }
