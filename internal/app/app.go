// Package app wires capture, detection, classification, and the
// calculator into the frame-synchronous recognition pipeline.
package app

import (
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/calc"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/voice"
)

// Pipeline defaults, used when Config leaves the matching field zero.
const (
	DefaultActiveFPS   = 15
	DefaultIdleFPS     = 2
	DefaultIdleTimeout = 10 * time.Second

	// noticeTTL bounds how long a transient rejection message stays in
	// the snapshot.
	noticeTTL = 2 * time.Second
)

// Settings keys for the runtime toggles persisted across restarts.
const (
	settingRecognition = "recognition_enabled"
	settingVoice       = "voice_enabled"
)

// Config holds the pipeline's collaborators and tuning. Camera and
// Detector are required; Store and Announcer may be nil to disable
// history and speech.
type Config struct {
	Camera    capture.Camera
	Detector  detector.Detector
	Store     *store.Store
	Announcer *voice.Announcer

	Tolerances       gesture.Tolerances
	StabilizerWindow int
	StabilizerFrac   float64
	CooldownFrames   int
	ActiveFPS        int
	IdleFPS          int
	IdleTimeout      time.Duration
	MotionThreshold  float64
}

// Snapshot is the pipeline state handed to the presentation layers
// (tray, HTTP server, websocket stream).
type Snapshot struct {
	Enabled           bool          `json:"enabled"`
	Active            bool          `json:"active"`
	Voice             bool          `json:"voice"`
	Calculator        calc.Snapshot `json:"-"`
	Display           string        `json:"display"`
	Expression        string        `json:"expression"`
	Mode              string        `json:"mode"`
	LastGesture       string        `json:"last_gesture"`
	LastConfidence    float64       `json:"last_confidence"`
	CooldownRemaining int           `json:"cooldown_remaining"`
	Notice            string        `json:"notice,omitempty"`
}

// App runs the recognition pipeline and owns the calculator state.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	stabilizer *gesture.Stabilizer
	gate       *gesture.CooldownGate
	calculator *calc.Calculator

	mu          sync.RWMutex
	enabled     bool
	voiceOn     bool
	active      bool
	stopCh      chan struct{}
	wg          sync.WaitGroup
	lastGesture gesture.Confirmed
	haveGesture bool
	notice      string
	noticeAt    time.Time
}

// New creates an App from the given configuration.
func New(config Config) *App {
	if config.StabilizerWindow <= 0 {
		config.StabilizerWindow = 10
	}
	if config.StabilizerFrac <= 0 {
		config.StabilizerFrac = 0.70
	}
	if config.CooldownFrames <= 0 {
		config.CooldownFrames = 25
	}
	if config.ActiveFPS <= 0 {
		config.ActiveFPS = DefaultActiveFPS
	}
	if config.IdleFPS <= 0 {
		config.IdleFPS = DefaultIdleFPS
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = DefaultIdleTimeout
	}
	if config.MotionThreshold <= 0 {
		config.MotionThreshold = 1.0
	}

	a := &App{
		config:     config,
		camera:     config.Camera,
		motion:     capture.NewMotionDetector(config.MotionThreshold),
		detector:   config.Detector,
		classifier: gesture.NewClassifier(config.Tolerances),
		stabilizer: gesture.NewStabilizer(config.StabilizerWindow, config.StabilizerFrac),
		gate:       gesture.NewCooldownGate(config.CooldownFrames),
		calculator: calc.New(),
		enabled:    true,
		voiceOn:    true,
	}
	a.restoreSettings()
	return a
}

// restoreSettings reloads the runtime toggles a previous session
// persisted. Keys that were never set keep their defaults.
func (a *App) restoreSettings() {
	if a.config.Store == nil {
		return
	}
	settings := a.config.Store.Settings()
	for key, dst := range map[string]*bool{
		settingRecognition: &a.enabled,
		settingVoice:       &a.voiceOn,
	} {
		v, err := settings.Get(key)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Printf("Error reading setting %s: %v", key, err)
			}
			continue
		}
		if b, perr := strconv.ParseBool(v); perr == nil {
			*dst = b
		}
	}
}

// saveSetting persists a runtime toggle so it survives restarts.
func (a *App) saveSetting(key string, value bool) {
	if a.config.Store == nil {
		return
	}
	if err := a.config.Store.Settings().Set(key, strconv.FormatBool(value)); err != nil {
		log.Printf("Error saving setting %s: %v", key, err)
	}
}

// SetEnabled pauses or resumes gesture recognition and persists the
// choice. The calculator keeps its state while paused.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	changed := a.enabled != enabled
	a.enabled = enabled
	if changed && !enabled {
		a.stabilizer.Reset()
	}
	a.mu.Unlock()

	if changed {
		a.saveSetting(settingRecognition, enabled)
	}
}

// IsEnabled reports whether recognition is running.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetVoiceEnabled mutes or unmutes spoken announcements and persists
// the choice.
func (a *App) SetVoiceEnabled(enabled bool) {
	a.mu.Lock()
	changed := a.voiceOn != enabled
	a.voiceOn = enabled
	a.mu.Unlock()

	if changed {
		a.saveSetting(settingVoice, enabled)
	}
}

// VoiceEnabled reports whether announcements are spoken.
func (a *App) VoiceEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.voiceOn
}

// Start opens the camera and launches the pipeline goroutine.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}
	if a.camera == nil || a.detector == nil {
		return errors.New("app requires a camera and a detector")
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(a.config.IdleFPS)

	a.stopCh = make(chan struct{})
	a.wg.Add(1)
	go a.runPipeline(a.stopCh)

	log.Println("Recognition pipeline started")
	return nil
}

// Stop halts the pipeline and releases the camera and detector. The
// pipeline goroutine is waited out before anything is closed so no
// in-flight frame read or detection races the teardown.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh := a.stopCh
	a.stopCh = nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		a.wg.Wait()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.camera != nil {
		if err := a.camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
	}
	a.motion.Close()
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Recognition pipeline stopped")
}

// Snapshot assembles the current pipeline state.
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	cs := a.calculator.Snapshot()
	s := Snapshot{
		Enabled:           a.enabled,
		Active:            a.active,
		Voice:             a.voiceOn,
		Calculator:        cs,
		Display:           cs.Display,
		Expression:        cs.Expression,
		Mode:              cs.Mode.String(),
		CooldownRemaining: a.gate.Remaining(),
	}
	if a.haveGesture {
		s.LastGesture = a.lastGesture.Label.String()
		s.LastConfidence = a.lastGesture.Confidence
	}
	if a.notice != "" && time.Since(a.noticeAt) < noticeTTL {
		s.Notice = a.notice
	}
	return s
}

// ClearAll resets the calculator, mirroring the CLEAR gesture. Used by
// the tray menu.
func (a *App) ClearAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calculator.Clear()
}
