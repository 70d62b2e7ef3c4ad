package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"crosswarped.com/xwsolve"
	"crosswarped.com/xwsolve/internal/render"
	"crosswarped.com/xwsolve/pkg/puzzle"
)

func main() {

	structureFile := flag.String("structure", "", "The file describing the grid structure ('_' marks fillable cells)")
	wordsFile := flag.String("words", "", "The file to load the vocabulary from")
	output := flag.String("output", "", "Optional PNG file to save the solved grid to")

	timeout := flag.Duration("timeout", 1*time.Minute, "The timeout for the solver")
	debug := flag.Bool("debug", false, "Enable debug logging")

	profile := flag.Bool("profile", false, "Profile the solver")
	profileFile := flag.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")
	memoryProfileFile := flag.String("memory-profile-file", "mem.pprof", "The file to write the memory profile to")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *structureFile == "" || *wordsFile == "" {
		fmt.Println("Usage: xwsolve -structure <file> -words <file> [-output <image>]")
		os.Exit(1)
	}

	structure, err := loadLines(*structureFile)
	if err != nil {
		log.Fatal().Err(err).Msg("loading structure")
	}
	words, err := loadWords(*wordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("loading words")
	}
	log.Info().Int("rows", len(structure)).Int("words", len(words)).Msg("loaded puzzle input")

	pzl, err := puzzle.New(structure, words)
	if err != nil {
		log.Fatal().Err(err).Msg("building puzzle")
	}

	var mf *os.File
	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			log.Fatal().Err(err).Msg("creating profile file")
		}
		defer f.Close()

		mf, err = os.Create(*memoryProfileFile)
		if err != nil {
			log.Fatal().Err(err).Msg("creating memory profile file")
		}
		defer mf.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("starting CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	assignment, ok := xwsolve.New(pzl).Solve(ctx)

	if mf != nil {
		pprof.WriteHeapProfile(mf)
	}

	if ctx.Err() != nil {
		log.Fatal().Err(ctx.Err()).Msg("solve timed out")
	}
	if !ok {
		fmt.Println("No solution.")
		os.Exit(1)
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("solved")

	grid := xwsolve.NewGrid(pzl, assignment)
	fmt.Println(grid.Repr())

	if *output != "" {
		if err := render.PNG(grid, *output); err != nil {
			log.Fatal().Err(err).Msg("saving image")
		}
		log.Info().Str("file", *output).Msg("saved image")
	}
}

// loadLines reads the structure file as-is, one grid row per line.
func loadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

// loadWords reads the vocabulary, one word per line; blank lines and lines
// starting with '#' are skipped. Normalization is the puzzle model's job.
func loadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	return words, scanner.Err()
}
