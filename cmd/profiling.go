package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Profiler manages CPU, memory, and trace profiling for a single search run.
type Profiler struct {
	cpuProfile string
	memProfile string
	tracePath  string

	// stops run in reverse order on Stop
	stops []func() error
}

// NewProfiler creates a new profiler with the specified profile paths.
// Empty paths disable the corresponding profile.
func NewProfiler(cpuProfile, memProfile, tracePath string) *Profiler {
	return &Profiler{
		cpuProfile: cpuProfile,
		memProfile: memProfile,
		tracePath:  tracePath,
	}
}

// Enabled reports whether any profile was requested.
func (p *Profiler) Enabled() bool {
	return p.cpuProfile != "" || p.memProfile != "" || p.tracePath != ""
}

// Start begins CPU profiling and execution tracing if configured. On error
// anything already started is stopped again.
func (p *Profiler) Start() error {
	if p.cpuProfile != "" {
		if err := p.startFile(p.cpuProfile, "CPU profile", pprof.StartCPUProfile, pprof.StopCPUProfile); err != nil {
			return err
		}
	}

	if p.tracePath != "" {
		if err := p.startFile(p.tracePath, "trace", trace.Start, trace.Stop); err != nil {
			p.stopAll()
			return err
		}
	}

	return nil
}

func (p *Profiler) startFile(path, what string, start func(w io.Writer) error, stop func()) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", what, err)
	}
	if err := start(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not start %s: %w", what, err)
	}

	p.stops = append(p.stops, func() error {
		stop()
		if err := f.Close(); err != nil {
			return fmt.Errorf("could not close %s file: %w", what, err)
		}
		return nil
	})
	return nil
}

// Stop ends all profiling and writes the memory profile if configured.
// Failures are reported on stderr since profiling never fails a search.
func (p *Profiler) Stop() {
	if err := errors.Join(p.stopAll(), p.writeHeapProfile()); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func (p *Profiler) stopAll() error {
	var errs []error
	for i := len(p.stops) - 1; i >= 0; i-- {
		errs = append(errs, p.stops[i]())
	}
	p.stops = nil
	return errors.Join(errs...)
}

func (p *Profiler) writeHeapProfile() (err error) {
	if p.memProfile == "" {
		return nil
	}

	f, err := os.Create(p.memProfile)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close memory profile file: %w", cerr)
		}
	}()

	runtime.GC() // Get up-to-date statistics
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return nil
}
