package generation

import (
	"fmt"
	"time"

	"github.com/desertwitch/protogen/internal/schema"
	"github.com/dustin/go-humanize"
)

// Report is the outcome of a generation run.
type Report struct {
	RunID       string
	StartTime   time.Time
	FinishTime  time.Time
	Directories int
	DirsCreated int
	Discovered  int
	Generated   int
	UpToDate    int
	DryRun      int
	Failed      int
	SchemaBytes int64

	// Results holds one [schema.Result] per processed schema file, in
	// discovery order. Files not reached before a cancellation are missing.
	Results []*schema.Result
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.FinishTime.IsZero() {
		return 0
	}

	return r.FinishTime.Sub(r.StartTime)
}

// Summary returns a human readable one-line summary of the run.
func (r *Report) Summary() string {
	s := fmt.Sprintf("%s of %s schema files generated (%s) across %s directories in %s",
		humanize.Comma(int64(r.Generated)),
		humanize.Comma(int64(r.Discovered)),
		humanize.Bytes(uint64(max(r.SchemaBytes, 0))),
		humanize.Comma(int64(r.Directories)),
		r.Duration().Round(time.Millisecond),
	)

	if r.UpToDate > 0 {
		s += fmt.Sprintf(", %s up to date", humanize.Comma(int64(r.UpToDate)))
	}

	if r.DryRun > 0 {
		s += fmt.Sprintf(", %s dry-run", humanize.Comma(int64(r.DryRun)))
	}

	if r.Failed > 0 {
		s += fmt.Sprintf(", %s failed", humanize.Comma(int64(r.Failed)))
	}

	return s
}

func (r *Report) add(res *schema.Result) {
	r.Results = append(r.Results, res)

	switch res.Status {
	case schema.StatusGenerated:
		r.Generated++
	case schema.StatusUpToDate:
		r.UpToDate++
	case schema.StatusDryRun:
		r.DryRun++
	case schema.StatusFailed:
		r.Failed++
	case schema.StatusPending:
	}
}
