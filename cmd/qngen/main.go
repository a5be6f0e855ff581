// qngen generates the QuakeNite asset set: player models, buildable
// pieces, skins, textures and synthesized sounds, written as a loose
// tree or packed into a PK3 archive.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/ludoplex/quakenite/internal/assetgen"
	"github.com/ludoplex/quakenite/internal/config"
	"github.com/ludoplex/quakenite/internal/logger"
	"github.com/ludoplex/quakenite/pkg/sound"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := flag.Arg(0)
	switch command {
	case "all", "characters", "buildables", "sounds":
		runGenerate(cfg, command)
	case "preview":
		runPreview(cfg, flag.Arg(1))
	case "help":
		printUsage()
	case "":
		printUsage()
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`qngen - QuakeNite asset generator

Usage:
  qngen [flags] <command>

Commands:
  all             Generate every asset (models, skins, textures, sounds)
  characters      Generate player models, skins and textures
  buildables      Generate buildable models, icons and textures
  sounds          Generate voice sets and structure sounds
  preview <name>  Synthesize one sound and play it through the speakers

Flags:
  -config <path>      Config file (default ./qngen.yaml)
  -out <dir>          Output directory for loose assets
  -pk3 <path>         Pack assets into a PK3 archive at this path
  -characters <list>  Comma-separated character subset
  -texture-size <n>   Texture edge size in pixels
  -workers <n>        Parallel generation jobs (0 = all CPUs)
  -no-sound           Skip sound generation
  -debug              Enable debug logging

Examples:
  qngen all
  qngen -pk3 pak9.pk3 -characters chef,blitz characters
  qngen -characters serpent preview death1`)
}

func runGenerate(cfg *config.Config, command string) {
	scope, err := assetgen.ParseScope(command)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := assetgen.New(cfg).Run(ctx, scope); err != nil {
		logger.Error("generation failed", zap.Error(err))
		os.Exit(1)
	}
}

func runPreview(cfg *config.Config, name string) {
	if name == "" {
		fmt.Fprintln(os.Stderr, "Usage: qngen preview <sound>")
		os.Exit(1)
	}

	file, err := previewSound(cfg, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Playing %s (%.2fs at %d Hz)\n",
		file.Name, file.Sound.Duration().Seconds(), file.Sound.SampleRate)

	if err := play(file, cfg.Sound.SampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// previewSound synthesizes the named voice or structure sound. The voice
// belongs to the first character selected via -characters, defaulting to
// the head of the roster.
func previewSound(cfg *config.Config, name string) (assetgen.SoundFile, error) {
	ch := assetgen.Roster()[0]
	if len(cfg.Generator.Characters) > 0 {
		found, ok := assetgen.CharacterByModelName(cfg.Generator.Characters[0])
		if !ok {
			return assetgen.SoundFile{}, fmt.Errorf("unknown character %q", cfg.Generator.Characters[0])
		}
		ch = found
	}

	files := append(assetgen.BuildVoiceSet(ch), assetgen.BuildStructureSounds()...)
	want := strings.ToLower(strings.TrimSuffix(name, ".wav"))
	for _, f := range files {
		if strings.TrimSuffix(f.Name, ".wav") == want {
			return f, nil
		}
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = strings.TrimSuffix(f.Name, ".wav")
	}
	return assetgen.SoundFile{}, fmt.Errorf("unknown sound %q (available: %s)", name, strings.Join(names, ", "))
}

// play sends the sound through the speakers and blocks until it finishes.
// Playback runs at the configured sample rate; sounds synthesized at a
// different rate are resampled on the way out.
func play(file assetgen.SoundFile, playbackRate int) error {
	s := file.Sound
	if playbackRate <= 0 {
		playbackRate = sound.DefaultSampleRate
	}
	rate := beep.SampleRate(playbackRate)
	if err := speaker.Init(rate, rate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	var streamer beep.Streamer = s.Streamer()
	if s.Format().SampleRate != rate {
		streamer = beep.Resample(4, s.Format().SampleRate, rate, streamer)
	}

	ctrl := &beep.Ctrl{Streamer: streamer, Paused: false}
	volume := &effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Volume:   0,
		Silent:   false,
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(volume, beep.Callback(func() {
		close(done)
	})))
	<-done

	logger.Sugar.Debugf("finished %s", file.Name)
	return nil
}
