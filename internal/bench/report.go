package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Render writes a human-readable table of r to w.
//
//	strategy  best      mean      speedup
//	seq       1.2ms     1.3ms     1.00x
func (r *Report) Render(w io.Writer) error {
	c := r.Config
	if _, err := fmt.Fprintf(w, "A %dx%d (nnz %d) x B %dx%d (nnz %d) -> C nnz %d, workers %d, grain %d, repeat %d\n",
		c.Rows, c.Inner, r.NNZA, c.Inner, c.Cols, r.NNZB, r.NNZC, r.Workers, c.Grain, c.Repeat); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "strategy\tbest\tmean\tspeedup")
	var base time.Duration
	for i, t := range r.Timings {
		if i == 0 {
			base = t.Best
		}
		fmt.Fprintf(tw, "%s\t%v\t%v\t%s\n", t.Strategy, t.Best, t.Mean, speedup(base, t.Best))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	verdict := "results agree"
	if !r.Agree {
		verdict = "RESULTS DISAGREE"
	}
	_, err := fmt.Fprintln(w, verdict)

	return err
}

func speedup(base, d time.Duration) string {
	if d <= 0 || base <= 0 {
		return "-"
	}

	return fmt.Sprintf("%.2fx", float64(base)/float64(d))
}
