package hsi

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-hsiexport/internal/logging"
)

// Job is one output of ExportAll.
type Job struct {
	Format Format
	Dest   string
}

// ExportAll runs the jobs with at most workers exports in flight; workers
// <= 0 means no limit. Cancelling ctx keeps jobs that have not started from
// running but never interrupts a running export. The first error is
// returned.
//
// Companion wavelength files are written once per distinct path before the
// exports start.
func ExportAll(ctx context.Context, c *Cube, jobs []Job, opts Options, workers int) error {
	if opts.WavelengthsFile && c.wavelengths != nil {
		seen := make(map[string]bool)
		for _, j := range jobs {
			p := WavelengthsPath(j.Dest)
			if seen[p] {
				continue
			}
			seen[p] = true
			if err := WriteWavelengths(p, c.wavelengths); err != nil {
				return err
			}
		}
	}
	opts.WavelengthsFile = false

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tlog := logging.NewTimeLog()
			if err := Export(c, j.Format, j.Dest, opts); err != nil {
				return fmt.Errorf("%s export to %s: %w", j.Format, j.Dest, err)
			}
			tlog.Infof("exported %s to %s", j.Format, j.Dest)
			return nil
		})
	}
	return g.Wait()
}
