package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ayusman/mudra/internal/calc"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// runPipeline is the frame loop. It paces capture with a ticker, drops
// to the idle rate after IdleTimeout without motion, and hands each
// active frame's landmarks to processFrame.
func (a *App) runPipeline(stopCh chan struct{}) {
	defer a.wg.Done()

	lastMotion := time.Now()
	interval := time.Second / time.Duration(a.config.IdleFPS)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			moved, _ := a.motion.Detect(frame)
			if moved {
				lastMotion = time.Now()
				if !a.isActive() {
					a.setActive(true)
					a.camera.SetFPS(a.config.ActiveFPS)
					interval = time.Second / time.Duration(a.config.ActiveFPS)
					ticker.Reset(interval)
					log.Println("Switched to active mode")
				}
			} else if a.isActive() && time.Since(lastMotion) > a.config.IdleTimeout {
				a.setActive(false)
				a.camera.SetFPS(a.config.IdleFPS)
				interval = time.Second / time.Duration(a.config.IdleFPS)
				ticker.Reset(interval)
				a.resetRecognition()
				log.Println("Switched to idle mode")
			}

			if !a.isActive() {
				frame.Close()
				continue
			}

			hands, err := a.detector.Detect(frame)
			frame.Close()
			a.observeDetection(hands, err)
		}
	}
}

// observeDetection feeds one frame's detection outcome into recognition.
// A detector failure degrades to a no-hands frame rather than skipping
// it, so the cooldown countdown still advances once per captured frame.
func (a *App) observeDetection(hands []detector.HandLandmarks, err error) {
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		hands = nil
	}
	a.processFrame(hands)
}

func (a *App) isActive() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active
}

func (a *App) setActive(active bool) {
	a.mu.Lock()
	a.active = active
	a.mu.Unlock()
}

// resetRecognition drops buffered observations when leaving active mode
// so stale frames cannot confirm a gesture after a pause.
func (a *App) resetRecognition() {
	a.mu.Lock()
	a.stabilizer.Reset()
	a.mu.Unlock()
}

// processFrame advances recognition by one frame: classify the hands,
// feed the stabilization buffer, and apply the confirmed gesture if the
// cooldown gate admits it. Exactly one gate tick happens per frame.
func (a *App) processFrame(hands []detector.HandLandmarks) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.gate.Tick()

	cls := a.classifier.Classify(hands)
	confirmed := a.stabilizer.Observe(cls)
	if confirmed == nil {
		return
	}
	if !a.gate.Admit(*confirmed) {
		return
	}

	a.lastGesture = *confirmed
	a.haveGesture = true
	a.apply(confirmed.Label)
}

// spokenOperator maps operators to their announcement text.
var spokenOperator = map[calc.Operator]string{
	calc.OpAdd:      "plus",
	calc.OpSubtract: "minus",
	calc.OpMultiply: "times",
	calc.OpDivide:   "divided by",
}

// apply performs the calculator transition for a confirmed gesture.
// Caller holds a.mu.
func (a *App) apply(label gesture.Label) {
	a.notice = ""

	var err error
	switch {
	case label == gesture.None:
		return
	case isDigit(label):
		d, _ := label.Digit()
		if err = a.calculator.PushDigit(d); err == nil {
			a.say(fmt.Sprintf("%d", d))
		}
	case label == gesture.Add:
		err = a.pushOperator(calc.OpAdd)
	case label == gesture.Subtract:
		err = a.pushOperator(calc.OpSubtract)
	case label == gesture.Multiply:
		err = a.pushOperator(calc.OpMultiply)
	case label == gesture.Divide:
		err = a.pushOperator(calc.OpDivide)
	case label == gesture.Equals:
		err = a.equals()
	case label == gesture.Delete:
		err = a.calculator.Delete()
	case label == gesture.Clear:
		a.calculator.Clear()
		a.say("cleared")
	default:
		log.Printf("Unhandled gesture label %v", label)
		return
	}

	if err != nil {
		if errors.Is(err, calc.ErrInvalidInput) {
			a.notice = err.Error()
			a.noticeAt = time.Now()
			log.Printf("Rejected input %v: %v", label, err)
			return
		}
		// Evaluation faults already moved the calculator to its error
		// state; announce and record them.
		log.Printf("Evaluation failed: %v", err)
	}
}

func (a *App) pushOperator(op calc.Operator) error {
	if err := a.calculator.PushOperator(op); err != nil {
		return err
	}
	a.say(spokenOperator[op])
	return nil
}

// equals evaluates the expression, records the outcome in history, and
// announces the result.
func (a *App) equals() error {
	expr := a.calculator.Expression()
	err := a.calculator.Equals()

	if errors.Is(err, calc.ErrInvalidInput) {
		return err
	}

	entry := &store.Calculation{Expression: expr}
	if err != nil {
		entry.IsError = true
		a.say("error")
	} else {
		entry.Result = a.calculator.Snapshot().Result
		a.say("equals " + entry.Result)
	}

	if a.config.Store != nil {
		if herr := a.config.Store.History().Record(entry); herr != nil {
			log.Printf("Error recording calculation: %v", herr)
		}
	}
	return err
}

// say hands text to the announcer. Caller holds a.mu, so the voice
// toggle is read directly.
func (a *App) say(text string) {
	if !a.voiceOn || a.config.Announcer == nil {
		return
	}
	a.config.Announcer.Say(text)
}

func isDigit(label gesture.Label) bool {
	_, ok := label.Digit()
	return ok
}
