package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
	"github.com/ayusman/mudra/internal/voice"
)

func main() {
	fmt.Println("Mudra - Hand Gesture Calculator")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(config.Dir(), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	st, err := store.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// The landmark service is required: without it no gestures can be
	// recognized, so a startup failure is fatal.
	det, err := detector.NewMediaPipeDetector(cfg.Detector)
	if err != nil {
		log.Fatalf("Failed to start hand landmark service: %v", err)
	}

	var announcer *voice.Announcer
	if cfg.Voice.Enabled {
		speaker, err := voice.NewExecSpeaker()
		if err != nil {
			log.Printf("Voice disabled: %v", err)
		} else {
			announcer = voice.NewAnnouncer(speaker)
			defer announcer.Close()
		}
	}

	camera := capture.NewCamera(cfg.Camera.DeviceID, cfg.Camera.Mirror)

	a := app.New(app.Config{
		Camera:           camera,
		Detector:         det,
		Store:            st,
		Announcer:        announcer,
		Tolerances:       cfg.Gesture,
		StabilizerWindow: cfg.Stabilizer.Window,
		StabilizerFrac:   cfg.Stabilizer.Fraction,
		CooldownFrames:   cfg.Cooldown.Frames,
		ActiveFPS:        cfg.Camera.ActiveFPS,
		IdleFPS:          cfg.Camera.IdleFPS,
		IdleTimeout:      time.Duration(cfg.Camera.IdleTimeoutSec) * time.Second,
		MotionThreshold:  cfg.Camera.MotionThreshold,
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	if cfg.Server.Enabled {
		srv := server.New(server.Config{
			App:    a,
			Store:  st,
			Camera: camera,
		})
		go func() {
			log.Printf("Status server listening on %s", cfg.Server.Addr)
			if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
				log.Printf("Status server failed: %v", err)
			}
		}()
	}

	t := tray.New()
	// Seed the menu with the toggles restored from the settings store.
	t.SetEnabled(a.IsEnabled())
	t.SetVoiceEnabled(a.VoiceEnabled())
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnVoice(func(enabled bool) {
		a.SetVoiceEnabled(enabled)
	})
	t.OnClear(func() {
		a.ClearAll()
	})
	t.OnQuit(func() {
		a.Stop()
	})

	// Mirror the pipeline state into the tray menu.
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			s := a.Snapshot()
			t.SetDisplay(s.Display)
			t.SetLastGesture(s.LastGesture)
		}
	}()

	// Blocks until quit is chosen from the menu.
	t.Run()
}
