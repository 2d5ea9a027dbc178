// Package app hosts the animated scene in an SDL2 window: it polls input,
// advances the frame scheduler and draws the scene every frame.
package app

import (
	"fmt"
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshanim/internal/config"
	"github.com/Faultbox/meshanim/internal/engine/input"
	"github.com/Faultbox/meshanim/internal/engine/renderer"
	"github.com/Faultbox/meshanim/internal/engine/window"
	"github.com/Faultbox/meshanim/internal/logger"
)

// maxFrameStep bounds one scheduler step so a stalled frame (window drag,
// debugger pause) does not fire a burst of corner pulls.
const maxFrameStep = 250 * time.Millisecond

// App is the running demo.
type App struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *Scene
	log      *zap.Logger
}

// New opens the window and builds the scene described by cfg.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		log:    logger.Named("app"),
	}
	a.log.Info("initializing",
		zap.String("shape", cfg.Scene.Shape),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      "meshanim - " + cfg.Scene.Shape,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	width, height := a.window.Size()
	a.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		FovY:   float32(gomath.Pi / 3),
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.scene, err = BuildScene(cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	a.input = input.New()
	a.log.Info("initialized")
	return a, nil
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := min(now.Sub(lastTime), maxFrameStep)
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		if w, h, ok := a.input.Resized(); ok {
			a.renderer.Resize(a.window.Size())
			a.log.Debug("window resized", zap.Int("width", w), zap.Int("height", h))
		}

		a.scene.Sched.Advance(dt)

		a.renderer.Begin()
		a.renderer.Draw(a.scene.Root)
		a.renderer.End()
		a.window.SwapBuffers()

		frameCount++
		if since := time.Since(fpsTimer); since >= time.Second {
			a.log.Debug("fps",
				zap.Int("frames", frameCount),
				zap.Duration("dt", dt),
				zap.Int("actions", a.scene.Sched.Len()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close stops the animation and releases the renderer and window.
func (a *App) Close() {
	a.log.Info("closing")

	if a.scene != nil {
		if a.scene.Flag != nil {
			a.scene.Flag.Stop()
		}
		if a.scene.Box != nil {
			a.scene.Box.Stop()
		}
	}
	if a.renderer != nil {
		a.renderer.Close()
		a.renderer = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}
