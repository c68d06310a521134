// Package voice announces confirmed gestures and results through a
// text-to-speech backend. Announcements are queued and lossy: when the
// backend falls behind, new phrases are dropped rather than stalling the
// frame loop.
package voice

import (
	"errors"
	"log"
	"os/exec"
	"runtime"
	"sync"
)

// QueueDepth bounds how many phrases may wait for the backend. Speech is
// slower than gesture entry, so a short queue keeps announcements close
// to what the user just did.
const QueueDepth = 5

// Speaker converts one phrase to audio, blocking until playback ends.
type Speaker interface {
	Speak(text string) error
}

// NullSpeaker discards phrases. Used when speech is disabled and in tests.
type NullSpeaker struct{}

func (NullSpeaker) Speak(string) error { return nil }

// ExecSpeaker shells out to the platform speech command: say on macOS,
// espeak elsewhere.
type ExecSpeaker struct {
	command string
	args    []string
}

// NewExecSpeaker picks the speech command for the current platform.
func NewExecSpeaker() (*ExecSpeaker, error) {
	candidates := []string{"espeak", "espeak-ng"}
	if runtime.GOOS == "darwin" {
		candidates = []string{"say"}
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return &ExecSpeaker{command: path}, nil
		}
	}
	return nil, errors.New("no speech command found")
}

func (s *ExecSpeaker) Speak(text string) error {
	if text == "" {
		return nil
	}
	args := append(append([]string(nil), s.args...), text)
	return exec.Command(s.command, args...).Run()
}

// Announcer feeds queued phrases to a Speaker from a single worker
// goroutine.
type Announcer struct {
	speaker Speaker
	queue   chan string

	mu      sync.Mutex
	closed  bool
	done    chan struct{}
	dropped int
}

// NewAnnouncer starts the worker. Close must be called to stop it.
func NewAnnouncer(speaker Speaker) *Announcer {
	a := &Announcer{
		speaker: speaker,
		queue:   make(chan string, QueueDepth),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Announcer) run() {
	defer close(a.done)
	for text := range a.queue {
		if err := a.speaker.Speak(text); err != nil {
			log.Printf("voice: speak %q: %v", text, err)
		}
	}
}

// Say queues a phrase. It never blocks; when the queue is full the
// phrase is dropped and Say returns false.
func (a *Announcer) Say(text string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || text == "" {
		return false
	}
	select {
	case a.queue <- text:
		return true
	default:
		a.dropped++
		return false
	}
}

// Dropped returns how many phrases were discarded because the queue was
// full.
func (a *Announcer) Dropped() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dropped
}

// Close stops accepting phrases and waits for queued ones to finish.
func (a *Announcer) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		<-a.done
		return
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()
	<-a.done
}
