//go:build !js

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/seqsense/c3dview/config"
	"github.com/seqsense/c3dview/playback"
	"github.com/seqsense/c3dview/recording"
	"github.com/seqsense/c3dview/viewer"
)

const windowTitle = "C3D Viewer"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func openRecording(p string) (playback.FrameSource, error) {
	return recording.Open(p, recording.ReadFile)
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lv, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(lv).
		With().Timestamp().Logger(), nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("c3dview", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: c3dview [flags] FILE...")
		fs.PrintDefaults()
	}
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	c, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log, err := newLogger(stderr, c.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	opts := viewer.DefaultOptions()
	opts.Orientation = viewer.Orientation{Theta: c.Camera.Theta, Phi: c.Camera.Phi, Rho: c.Camera.Rho}
	opts.Trail = c.Trail
	opts.Width, opts.Height = c.Width, c.Height
	opts.Logger = log

	player, err := viewer.NewPlayer(fs.Args(), openRecording, opts)
	if err != nil {
		log.Error().Err(err).Msg("failed to start playback")
		return 1
	}

	g := newGame(player, log)
	g.readCommands(stdin, stdout)

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(c.Width, c.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// One Update per rendered frame; the playback clock paces itself.
	ebiten.SetTPS(ebiten.SyncWithFPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("playback failed")
		return 1
	}
	return 0
}
