package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

// Config holds the field geometry, pacing and the ambient settings of a run.
type Config struct {
	Width        int `toml:"width"`
	Height       int `toml:"height"`
	PaddleWidth  int `toml:"paddle_width"`
	PaddleHeight int `toml:"paddle_height"`
	PaddleMargin int `toml:"paddle_margin"` // gap between the paddle and the bottom edge
	Radius       int `toml:"radius"`
	FallSpeed    int `toml:"fall_speed"`  // pixels per frame
	PaddleStep   int `toml:"paddle_step"` // pixels per key event
	FPS          int `toml:"fps"`

	Background string        `toml:"background"`
	Seed       int64         `toml:"seed"`
	Hold       time.Duration `toml:"-"`
	HoldMs     int           `toml:"hold_ms"`
	Device     string        `toml:"device"`
	LogFile    string        `toml:"log"`
	Snapshot   string        `toml:"snapshot"`
}

var (
	ErrInvalid = errors.New("invalid configuration")
)

func Defaults() Config {
	return Config{
		Width:        1429,
		Height:       2000,
		PaddleWidth:  300,
		PaddleHeight: 150,
		PaddleMargin: 20,
		Radius:       40,
		FallSpeed:    10,
		PaddleStep:   20,
		FPS:          30,
		Background:   "background.jpg",
		Hold:         120 * time.Millisecond,
		HoldMs:       120,
	}
}

// FramePeriod is the target duration of one loop iteration.
func (c Config) FramePeriod() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// PaddleY is the fixed top edge of the paddle.
func (c Config) PaddleY() int {
	return c.Height - c.PaddleHeight - c.PaddleMargin
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: field must be positive, got %vx%v", ErrInvalid, c.Width, c.Height)
	case c.PaddleWidth <= 0 || c.PaddleWidth >= c.Width:
		return fmt.Errorf("%w: paddle width %v must be in (0, %v)", ErrInvalid, c.PaddleWidth, c.Width)
	case c.PaddleHeight <= 0 || c.PaddleY() < 0:
		return fmt.Errorf("%w: paddle height %v does not fit a field %v high", ErrInvalid, c.PaddleHeight, c.Height)
	case c.Radius < 0 || 2*c.Radius >= c.Width:
		return fmt.Errorf("%w: radius %v does not fit a field %v wide", ErrInvalid, c.Radius, c.Width)
	case c.FallSpeed <= 0:
		return fmt.Errorf("%w: fall speed must be positive", ErrInvalid)
	case c.PaddleStep < 0:
		return fmt.Errorf("%w: paddle step must not be negative", ErrInvalid)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive", ErrInvalid)
	case c.Hold < 0:
		return fmt.Errorf("%w: hold window must not be negative", ErrInvalid)
	}
	return nil
}

type flags struct {
	file         *string
	width        *int
	height       *int
	paddleWidth  *int
	paddleHeight *int
	radius       *int
	fallSpeed    *int
	paddleStep   *int
	fps          *int
	background   *string
	seed         *int64
	hold         *time.Duration
	device       *string
	logFile      *string
	snapshot     *string
}

func newApp() (*kingpin.Application, *flags) {
	d := Defaults()
	app := kingpin.New("catch", "Catch the falling candle with the cake.")
	app.Version(Version)
	app.HelpFlag.Short('h')

	f := &flags{
		file:         app.Flag("config", "TOML file overriding the defaults").Short('c').ExistingFile(),
		width:        app.Flag("width", "Field width in pixels").Default(fmt.Sprint(d.Width)).Int(),
		height:       app.Flag("height", "Field height in pixels").Default(fmt.Sprint(d.Height)).Int(),
		paddleWidth:  app.Flag("paddle-width", "Paddle width in pixels").Default(fmt.Sprint(d.PaddleWidth)).Int(),
		paddleHeight: app.Flag("paddle-height", "Paddle height in pixels").Default(fmt.Sprint(d.PaddleHeight)).Int(),
		radius:       app.Flag("radius", "Falling object radius").Default(fmt.Sprint(d.Radius)).Short('r').Int(),
		fallSpeed:    app.Flag("speed", "Fall speed in pixels per frame").Default(fmt.Sprint(d.FallSpeed)).Short('s').Int(),
		paddleStep:   app.Flag("step", "Paddle step in pixels per key event").Default(fmt.Sprint(d.PaddleStep)).Int(),
		fps:          app.Flag("fps", "Target frame rate").Default(fmt.Sprint(d.FPS)).Short('R').Int(),
		background:   app.Flag("background", "Background image").Default(d.Background).Short('b').String(),
		seed:         app.Flag("seed", "Random seed, 0 seeds from the clock").Default("0").Int64(),
		hold:         app.Flag("hold", "How long an arrow press counts as held; raise above the terminal repeat delay for smooth movement").Default(d.Hold.String()).Duration(),
		device:       app.Flag("device", "Read keys from an evdev device instead of the terminal").Short('d').String(),
		logFile:      app.Flag("log", "Write log output to this file").Short('l').String(),
		snapshot:     app.Flag("snapshot", "Write the last frame to this PNG on exit").String(),
	}
	return app, f
}

// Parse builds a Config from the built-in defaults, then the optional TOML
// file, then any flag given explicitly on the command line.
func Parse(args []string) (Config, error) {
	app, f := newApp()

	ctx, err := app.ParseContext(args)
	if nil != err {
		return Config{}, err
	}
	if _, err := app.Parse(args); nil != err {
		return Config{}, err
	}

	set := map[string]bool{}
	for _, el := range ctx.Elements {
		if clause, ok := el.Clause.(*kingpin.FlagClause); ok {
			set[clause.Model().Name] = true
		}
	}

	cfg := Defaults()
	if *f.file != "" {
		if err := Load(*f.file, &cfg); nil != err {
			return Config{}, err
		}
	}

	apply := func(name string, fn func()) {
		if set[name] || *f.file == "" {
			fn()
		}
	}
	apply("width", func() { cfg.Width = *f.width })
	apply("height", func() { cfg.Height = *f.height })
	apply("paddle-width", func() { cfg.PaddleWidth = *f.paddleWidth })
	apply("paddle-height", func() { cfg.PaddleHeight = *f.paddleHeight })
	apply("radius", func() { cfg.Radius = *f.radius })
	apply("speed", func() { cfg.FallSpeed = *f.fallSpeed })
	apply("step", func() { cfg.PaddleStep = *f.paddleStep })
	apply("fps", func() { cfg.FPS = *f.fps })
	apply("background", func() { cfg.Background = *f.background })
	apply("seed", func() { cfg.Seed = *f.seed })
	apply("hold", func() { cfg.Hold = *f.hold })
	apply("device", func() { cfg.Device = *f.device })
	apply("log", func() { cfg.LogFile = *f.logFile })
	apply("snapshot", func() { cfg.Snapshot = *f.snapshot })
	cfg.HoldMs = int(cfg.Hold / time.Millisecond)

	return cfg, cfg.Validate()
}

// Load overlays the TOML file at path onto cfg.
func Load(path string, cfg *Config) error {
	cfg.HoldMs = int(cfg.Hold / time.Millisecond)
	md, err := toml.DecodeFile(path, cfg)
	if nil != err {
		return fmt.Errorf("unable to read config %v: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %v in %v", ErrInvalid, undecoded[0], path)
	}
	cfg.Hold = time.Duration(cfg.HoldMs) * time.Millisecond
	return nil
}
