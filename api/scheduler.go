/*
scheduler.go - Window digest scheduler

PURPOSE:
  Reports the marks of each unit window (hour, day, week, month...) once
  the window has closed. The wait is computed from the calendar, not a
  fixed interval: a month digest sleeps until the first millisecond of the
  next month in the timeline's zone, so month lengths and DST shifts are
  honored.

DESIGN:
  - Runs a background goroutine with a timer reset at every boundary
  - The boundary is WindowOf(now, unit).End + 1ms
  - Each closed window is reported once, empty or not
  - Report defaults to a log line per window

CONFIGURATION:
  - Unit:    window unit; zero disables the scheduler (server.digest_unit)
  - Enabled: whether the scheduler is active (default: true)

USAGE:
  scheduler := NewDigestScheduler(tl, moment.DayOfMonth)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - timeline/window.go: window boundaries
  - handlers.go: WindowMarks endpoint (same query, on demand)
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/moment/moment"
	"github.com/warp/moment/timeline"
)

// DigestScheduler reports marks per closed window.
type DigestScheduler struct {
	Timeline *timeline.Timeline
	Unit     moment.Unit
	Enabled  bool
	Report   func(timeline.Group)

	now  func() time.Time
	stop chan struct{}
	wg   sync.WaitGroup
	mu   sync.Mutex
	live bool
}

// NewDigestScheduler creates a scheduler over tl's marks.
func NewDigestScheduler(tl *timeline.Timeline, unit moment.Unit) *DigestScheduler {
	return &DigestScheduler{
		Timeline: tl,
		Unit:     unit,
		Enabled:  true,
		Report:   logDigest,
		now:      time.Now,
	}
}

// Start begins the scheduler.
func (ds *DigestScheduler) Start() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.Enabled || ds.Unit == 0 {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}
	if !ds.Unit.Truncatable() {
		log.Printf("[Scheduler] Unit %s has no window, not starting", ds.Unit)
		return
	}
	if ds.live {
		return
	}

	ds.stop = make(chan struct{})
	ds.live = true
	ds.wg.Add(1)
	go ds.run()

	log.Printf("[Scheduler] Started with %s windows", ds.Unit)
}

// Stop stops the scheduler and waits for a running digest to finish.
func (ds *DigestScheduler) Stop() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.live {
		return
	}
	close(ds.stop)
	ds.wg.Wait()
	ds.live = false
	log.Println("[Scheduler] Stopped")
}

func (ds *DigestScheduler) run() {
	defer ds.wg.Done()

	for {
		window, err := ds.CurrentWindow()
		if err != nil {
			log.Printf("[Scheduler] Error computing window: %v", err)
			return
		}

		wait := time.Duration(window.End.UnixMilli()+1-ds.now().UnixMilli()) * time.Millisecond
		timer := time.NewTimer(max(wait, 0))

		select {
		case <-timer.C:
			if _, err := ds.Digest(context.Background(), window); err != nil {
				log.Printf("[Scheduler] Error digesting %s: %v", window, err)
			}
		case <-ds.stop:
			timer.Stop()
			return
		}
	}
}

// CurrentWindow returns the window containing the current instant.
func (ds *DigestScheduler) CurrentWindow() (timeline.Window, error) {
	now := ds.Timeline.Calendar().FromTime(ds.now())
	return timeline.WindowOf(now, ds.Unit)
}

// Digest collects and reports the marks of w.
func (ds *DigestScheduler) Digest(ctx context.Context, w timeline.Window) (timeline.Group, error) {
	marks, err := ds.Timeline.In(ctx, w)
	if err != nil {
		return timeline.Group{}, err
	}
	group := timeline.Group{Window: w, Marks: marks}
	if ds.Report != nil {
		ds.Report(group)
	}
	return group, nil
}

func logDigest(g timeline.Group) {
	log.Printf("[Scheduler] %s %s: %d mark(s)", g.Window.Unit, g.Window, len(g.Marks))
	for _, m := range g.Marks {
		log.Printf("[Scheduler]   %s %s", m.At.MustFormat(DefaultPattern), m.Name)
	}
}
