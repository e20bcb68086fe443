// Command bgverify runs the background visibility gates against captured
// screenshots and exits 0 on pass, 1 on a gate failure and 2 when a
// required input is missing or the invocation is misconfigured.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/decantra/bgverify/config"
	"github.com/decantra/bgverify/gates"
	"github.com/decantra/bgverify/images"
	"github.com/decantra/bgverify/util"
	"github.com/decantra/bgverify/verify"
)

// Exit codes of the process contract.
const (
	exitPass         = 0
	exitGateFailed   = 1
	exitInputMissing = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return exitInputMissing
	}

	var (
		imagePath     = flag.String("image", "", "single screenshot to verify")
		dirPath       = flag.String("dir", "", "directory of screenshots to verify")
		motionDir     = flag.String("motion-dir", cfg.MotionDir, "directory containing frame-*.png motion captures")
		requireMotion = flag.Bool("require-motion", cfg.RequireMotion, "fail when motion frames are missing")
		requireTheme  = flag.Bool("require-theme", true, "fail when the level screenshot triple is missing")
		extended      = flag.Bool("extended", false, "also run edge-seam, black-screen, saturation and palette checks")
		checksums     = flag.Bool("checksums", false, "print SHA-256 checksums of analyzed files")
		verbose       = flag.Bool("verbose", cfg.Verbose, "enable debug logging")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	verifier, err := verify.New(gates.DefaultConfig(), logger)
	if err != nil {
		logger.Error().Err(err).Msg("invalid gate configuration")
		return exitInputMissing
	}

	paths, baseDir, code := resolveTargets(*imagePath, *dirPath, cfg.ScreenshotDir, logger)
	if code != exitPass {
		return code
	}

	request := verify.Request{
		RequireMotion: *requireMotion,
		RequireTheme:  *requireTheme,
		Extended:      *extended,
	}

	for _, path := range paths {
		buf, loadErr := util.LoadImage(path)
		if loadErr != nil {
			logger.Error().Err(loadErr).Str("path", path).Msg("failed to load screenshot")
			return exitInputMissing
		}
		request.Targets = append(request.Targets, verify.Target{
			Name:   filepath.Base(path),
			Buffer: buf,
		})
		if *checksums {
			if sum, sumErr := util.Checksum(path); sumErr == nil {
				fmt.Printf("%s  %s\n", sum, filepath.Base(path))
			}
		}
	}

	request.Levels = loadLevels(baseDir, logger)
	request.MotionFrames = loadMotion(baseDir, *motionDir, verifier.Config().MotionMinFrames, logger)

	report := verifier.Run(request)
	report.Render(os.Stdout)

	switch {
	case report.InputMissing():
		return exitInputMissing
	case !report.Passed:
		return exitGateFailed
	}
	return exitPass
}

// resolveTargets turns the -image/-dir flags into a screenshot list and the
// base directory used for level and motion discovery. Exactly one of the
// two flags must name the input; an empty -dir falls back to the configured
// default directory.
func resolveTargets(imagePath, dirPath, defaultDir string, logger zerolog.Logger) ([]string, string, int) {
	if imagePath != "" && dirPath != "" {
		logger.Error().Msg("use only one of -image or -dir")
		return nil, "", exitInputMissing
	}

	if imagePath != "" {
		if _, err := os.Stat(imagePath); err != nil {
			logger.Error().Str("path", imagePath).Msg("image not found")
			return nil, "", exitInputMissing
		}
		return []string{imagePath}, filepath.Dir(imagePath), exitPass
	}

	dir := dirPath
	if dir == "" {
		dir = defaultDir
	}
	paths, err := util.FindImages(dir)
	if err != nil {
		logger.Error().Err(err).Str("dir", dir).Msg("failed to scan screenshot directory")
		return nil, "", exitInputMissing
	}
	if len(paths) == 0 {
		logger.Error().Str("dir", dir).Msg("no screenshots found")
		return nil, "", exitInputMissing
	}
	return paths, dir, exitPass
}

// loadLevels decodes the level-tagged screenshots around baseDir for the
// theme and palette comparisons. Decode failures skip the level; the gate
// layer reports any resulting gap.
func loadLevels(baseDir string, logger zerolog.Logger) map[int]*images.PixelBuffer {
	levelPaths, err := util.FindLevelImages(baseDir)
	if err != nil {
		logger.Warn().Err(err).Msg("level screenshot discovery failed")
		return nil
	}
	levels := make(map[int]*images.PixelBuffer, len(levelPaths))
	for lvl, path := range levelPaths {
		buf, loadErr := util.LoadImage(path)
		if loadErr != nil {
			logger.Warn().Err(loadErr).Int("level", lvl).Msg("failed to load level screenshot")
			continue
		}
		levels[lvl] = buf
	}
	return levels
}

// loadMotion probes for and decodes the motion capture sequence. A missing
// directory returns nil; the orchestrator decides whether that is fatal.
func loadMotion(baseDir, preferred string, minFrames int, logger zerolog.Logger) []*images.PixelBuffer {
	dir, ok := util.PickMotionDir(baseDir, preferred, minFrames)
	if !ok {
		logger.Warn().Str("base", baseDir).Msg("no usable motion frame directory found")
		return nil
	}
	frames, err := util.LoadMotionFrames(dir)
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("failed to load motion frames")
		return nil
	}
	logger.Debug().Str("dir", dir).Int("frames", len(frames)).Msg("motion frames loaded")
	return frames
}
