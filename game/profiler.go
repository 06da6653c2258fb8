package game

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

const (
	fpsSampleWindow = 0.5  // seconds between FPS samples
	fpsDropLevel    = 55.0 // samples below this count as a drop
)

var errCaptureBusy = errors.New("capture already running or on cooldown")

// Profiler samples the tick rate and captures a CPU profile and trace when it drops
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string // empty disables capture

	// frame rate sampling
	fps          float64
	sampleTimer  float64
	sampleFrames int
	drops        int
	startTime    time.Time
	warmup       time.Duration

	now func() time.Time
}

// NewProfiler creates a profiler. An empty dir only logs drops.
func NewProfiler(dir string) *Profiler {
	return &Profiler{
		captureCooldown: 10 * time.Second,
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
		fps:             60,
		warmup:          3 * time.Second,
		startTime:       time.Now(),
		now:             time.Now,
	}
}

// Observe records one tick of deltaTime seconds and checks for a drop every sample window.
func (p *Profiler) Observe(deltaTime float64, glows, particles int) {
	p.sampleTimer += deltaTime
	p.sampleFrames++
	if p.sampleTimer < fpsSampleWindow {
		return
	}

	p.fps = float64(p.sampleFrames) / p.sampleTimer
	p.sampleTimer = 0
	p.sampleFrames = 0

	if p.fps >= fpsDropLevel || p.now().Sub(p.startTime) < p.warmup {
		return
	}
	p.drops++
	slog.Warn("frame rate drop", "fps", fmt.Sprintf("%.0f", p.fps), "glows", glows, "particles", particles)

	if p.profilesDir == "" {
		return
	}
	reason := fmt.Sprintf("fps%.0f-glows%d-particles%d", p.fps, glows, particles)
	if err := p.CaptureProfile(reason); err != nil && !errors.Is(err, errCaptureBusy) {
		slog.Error("capture profile", "error", err)
	}
}

// FPS returns the last sampled rate
func (p *Profiler) FPS() float64 {
	return p.fps
}

// Drops returns how many samples fell below the drop level after warm-up
func (p *Profiler) Drops() int {
	return p.drops
}

// CaptureProfile starts a CPU profile and trace in the background
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if p.isProfiling || now.Sub(p.lastCaptureTime) < p.captureCooldown {
		return errCaptureBusy
	}
	if err := os.MkdirAll(p.profilesDir, 0755); err != nil {
		return fmt.Errorf("create profiles dir: %w", err)
	}

	p.isProfiling = true
	p.lastCaptureTime = now
	baseName := fmt.Sprintf("fps-drop-%s-%s", now.Format("20060102-150405"), reason)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				slog.Error("capture cpu profile", "error", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				slog.Error("capture trace", "error", err)
			}
		}()
		wg.Wait()
	}()

	return nil
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("start cpu profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	slog.Info("cpu profile saved", "path", path)
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	path := filepath.Join(p.profilesDir, baseName+".trace")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	slog.Info("trace saved", "path", path)
	return nil
}

// IsProfiling returns whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}
