package profiling

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime/pprof"
	"runtime/trace"
	"time"
)

// EnableProfiling writes CPU, heap and trace profiles into dir. Profiling stops
// after stopTime or when the returned func is called, whichever comes first.
func EnableProfiling(dir string, stopTime time.Duration) (stop func()) {
	slog.Info("profiling enabled", "dir", dir)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Error("failed to create profiling directory", "err", err)
		return func() {}
	}

	cf, err := os.Create(filepath.Join(dir, "cpu.prof"))
	if err != nil {
		slog.Error("failed to start CPU profiling", "error", err)
		return func() {}
	}
	pprof.StartCPUProfile(cf)

	tc, err := os.Create(filepath.Join(dir, "trace.prof"))
	if err != nil {
		slog.Error("failed to start trace profiling", "error", err)
	} else {
		trace.Start(tc)
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-time.After(stopTime):
		case <-done:
		}

		pprof.StopCPUProfile()
		cf.Close()
		if tc != nil {
			trace.Stop()
			tc.Close()
		}

		mf, err := os.Create(filepath.Join(dir, "memory.prof"))
		if err != nil {
			slog.Error("failed to write memory profile", "error", err)
		} else {
			pprof.WriteHeapProfile(mf)
			mf.Close()
		}
		slog.Info("finished the profiling")
	}()

	var stopped bool
	return func() {
		if !stopped {
			stopped = true
			close(done)
		}
		<-finished
	}
}
