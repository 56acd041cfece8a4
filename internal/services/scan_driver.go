package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

// ScanEvent is one tick of an automated inbox scan.
type ScanEvent struct {
	Progress float64
	Found    models.ScannedData
	Done     bool
}

// ScanDriver produces the progress event sequence for an automated scan.
// The simulated driver stands in until the real inbox integration lands;
// tests substitute an instant one.
type ScanDriver interface {
	// Start begins emitting events and returns a stop function. Stop must
	// be safe to call more than once and must leave no orphaned timers.
	Start(emit func(ScanEvent)) (stop func())
}

const defaultScanTickInterval = 400 * time.Millisecond

// SimulatedScanDriver advances progress with pseudo-random increments on a
// repeating timer, growing the found-item counters as it goes.
type SimulatedScanDriver struct {
	Interval time.Duration
}

func (d *SimulatedScanDriver) Start(emit func(ScanEvent)) func() {
	interval := d.Interval
	if interval <= 0 {
		interval = defaultScanTickInterval
	}

	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() { close(done) })
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		progress := 0.0
		var found models.ScannedData
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				progress += 5 + rand.Float64()*12
				found.Hotels += rand.Intn(3)
				found.Flights += rand.Intn(2)
				found.Restaurants += rand.Intn(4)
				found.Activities += rand.Intn(3)

				if progress >= 100 {
					emit(ScanEvent{Progress: 100, Found: found, Done: true})
					return
				}
				emit(ScanEvent{Progress: progress, Found: found})
			}
		}
	}()

	return stop
}

// InstantScanDriver completes immediately with fixed counts. Deterministic
// substitute for the simulated driver.
type InstantScanDriver struct {
	Found models.ScannedData
}

func (d InstantScanDriver) Start(emit func(ScanEvent)) func() {
	emit(ScanEvent{Progress: 100, Found: d.Found, Done: true})
	return func() {}
}
