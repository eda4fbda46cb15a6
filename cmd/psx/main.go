package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/valerio/go-psx/internal/render/sdl2"
	"github.com/valerio/go-psx/internal/render/terminal"
	"github.com/valerio/go-psx/psx/bios"
	"github.com/valerio/go-psx/psx/gpu"
	"github.com/valerio/go-psx/psx/system"
	"github.com/valerio/go-psx/psx/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "go-psx"
	app.Description = "A PlayStation 1 system emulator core"
	app.Usage = "go-psx [options]"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "bios",
			Value: "bios/bios.bin",
			Usage: "Path to the BIOS ROM image",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a terminal HUD, discarding GPU primitives",
		},
		cli.BoolFlag{
			Name:  "pal",
			Usage: "Pace the host loop at PAL (50Hz) instead of NTSC (60Hz)",
		},
		cli.BoolFlag{
			Name:  "sdl2",
			Usage: "Display VRAM in an SDL2 window instead of the terminal HUD (requires -tags sdl2)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("go-psx: fatal", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	img, err := bios.Load(c.String("bios"))
	if err != nil {
		return err
	}

	year, month, day := img.Date()
	slog.Info("go-psx: bios loaded", "path", c.String("bios"), "date", fmt.Sprintf("%04d-%02d-%02d", year, month, day))

	switch {
	case c.Bool("headless"):
		return runHeadless(c, img)
	case c.Bool("sdl2"):
		return runSDL2(c, img)
	default:
		return runTerminal(c, img)
	}
}

func runHeadless(c *cli.Context, img *bios.Image) error {
	renderer := &gpu.NullRenderer{}
	sys := system.New(img, renderer)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-signals:
			return nil
		default:
			sys.RunTick()
		}
	}
}

func runSDL2(c *cli.Context, img *bios.Image) error {
	display, err := sdl2.New("go-psx")
	if err != nil {
		return err
	}
	defer display.Close()

	sys := system.New(img, display)

	fps := timing.TargetFPSNTSC
	if c.Bool("pal") {
		fps = timing.TargetFPSPAL
	}
	limiter := timing.NewAdaptiveLimiter(fps)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-signals:
			return nil
		default:
			if display.PollQuit() {
				return nil
			}
			sys.RunTick()
			limiter.WaitForNextFrame()
		}
	}
}

func runTerminal(c *cli.Context, img *bios.Image) error {
	hud := terminal.New()
	sys := system.New(img, hud)

	if err := hud.Init(); err != nil {
		return err
	}
	defer hud.Close()

	fps := timing.TargetFPSNTSC
	if c.Bool("pal") {
		fps = timing.TargetFPSPAL
	}
	limiter := timing.NewAdaptiveLimiter(fps)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-signals:
			return nil
		default:
			if hud.PollQuit() {
				return nil
			}
			sys.RunTick()
			hud.Draw(sys)
			limiter.WaitForNextFrame()
		}
	}
}
