package downloader

import (
	"context"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// runJobs drains the jobs through a bounded worker pool. Failures are
// isolated per job and recorded into the summary; a failing track never
// aborts its siblings.
func (d *Downloader) runJobs(ctx context.Context, logger zerolog.Logger, label string, jobs []job, sum *Summary) {
	if len(jobs) == 0 {
		return
	}

	tracker := newTracker(label, len(jobs))
	defer tracker.stop()

	wg, ctx := errgroup.WithContext(ctx)
	wg.SetLimit(d.conf.Concurrency)

	for _, j := range jobs {
		wg.Go(func() error {
			defer tracker.increment()

			jobLogger := logger.With().Str("track_id", j.track.ID.String()).Logger()
			if _, err := d.downloadTrack(ctx, jobLogger, j); nil != err {
				jobLogger.Error().Err(err).Msg("Failed to download track")
				sum.fail(j.name(), err)

				return nil
			}
			sum.success()

			return nil
		})
	}

	// Workers never return errors. Wait only joins them.
	_ = wg.Wait()
}

// tracker renders acquisition progress when stderr is a terminal and stays
// silent otherwise, leaving structured logs as the only output.
type tracker struct {
	writer  progress.Writer
	tracker *progress.Tracker
}

func newTracker(label string, total int) *tracker {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return &tracker{} //nolint:exhaustruct
	}

	writer := progress.NewWriter()
	writer.SetOutputWriter(os.Stderr)
	writer.SetUpdateFrequency(100 * time.Millisecond)

	t := &progress.Tracker{Message: label, Total: int64(total)} //nolint:exhaustruct
	writer.AppendTracker(t)
	go writer.Render()

	return &tracker{writer: writer, tracker: t}
}

func (t *tracker) increment() {
	if nil != t.tracker {
		t.tracker.Increment(1)
	}
}

func (t *tracker) stop() {
	if nil != t.writer {
		t.tracker.MarkAsDone()
		t.writer.Stop()
	}
}
