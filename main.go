package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"git.lost.host/meutraa/catch/internal/asset"
	"git.lost.host/meutraa/catch/internal/clock"
	"git.lost.host/meutraa/catch/internal/config"
	"git.lost.host/meutraa/catch/internal/game"
	"git.lost.host/meutraa/catch/internal/input"
	"git.lost.host/meutraa/catch/internal/render"
	"git.lost.host/meutraa/catch/internal/theme"
)

const title = "Catch the Ball"

type device interface {
	input.Source
	io.Closer
}

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func openInput(cfg config.Config) (device, error) {
	if cfg.Device != "" {
		return input.OpenEvdev(cfg.Device)
	}
	src, err := input.OpenKeyboard(cfg.Hold)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	return src, nil
}

// quietLog sends log output to the configured file, or nowhere while the
// terminal shows the game. The returned func restores stderr.
func quietLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if nil != err {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if nil != err {
		return err
	}

	// The game never starts without its background
	background, err := asset.LoadBackground(cfg.Background, cfg.Width, cfg.Height)
	if nil != err {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	restoreLog, err := quietLog(cfg.LogFile)
	if nil != err {
		return err
	}
	defer restoreLog()
	log.Printf("starting %vx%v at %v fps, seed %v", cfg.Width, cfg.Height, cfg.FPS, seed)

	src, err := openInput(cfg)
	if nil != err {
		return err
	}
	defer func() {
		if err := src.Close(); nil != err {
			log.Println("unable to close input", err)
		}
	}()

	var r render.Renderer = &render.DefaultRenderer{Title: title}
	if err := r.Init(); nil != err {
		return fmt.Errorf("unable to open display: %w", err)
	}
	defer func() {
		// Restore the terminal state
		if err := r.Deinit(); nil != err {
			log.Println("unable to restore terminal", err)
		}
	}()

	physics := game.NewPhysics(cfg, rand.New(rand.NewSource(seed)))
	loop := game.NewLoop(cfg, background, r, src, clock.NewFrameClock(cfg.FramePeriod()), physics, &theme.DefaultTheme{})
	if err := loop.Run(); nil != err {
		return err
	}

	if cfg.Snapshot != "" {
		if err := render.WritePNG(cfg.Snapshot, loop.Frame()); nil != err {
			return err
		}
		log.Println("wrote snapshot to", cfg.Snapshot)
	}
	return nil
}
