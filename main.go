package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"gomokuzero/checkpoint"
	"gomokuzero/config"
	"gomokuzero/experiments"
	"gomokuzero/learner"
	"gomokuzero/metrics"
	"gomokuzero/nnet"
	"gomokuzero/searcher"
	"os"
	"os/signal"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	iters := flag.Int("iters", 0, "Override num_iters")
	seed := flag.Uint64("seed", 0, "Override seed")
	logLevel := flag.String("log-level", "", "Override log_level")
	checkpoints := flag.String("checkpoints", "", "Override checkpoint_dir")
	records := flag.String("records", "", "Override records_dir")
	throughput := flag.Int("throughput", 0, "Play this many games per pool size to measure search throughput instead of training")
	flag.Parse()

	conf := config.Default()
	if *configPath != "" {
		var err error
		if conf, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "iters":
			conf.NumIters = *iters
		case "seed":
			conf.Seed = *seed
		case "log-level":
			conf.LogLevel = *logLevel
		case "checkpoints":
			conf.CheckpointDir = *checkpoints
		case "records":
			conf.RecordsDir = *records
		}
	})
	if err := conf.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	setupLogging(conf.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *throughput > 0 {
		if err := runThroughput(conf, *throughput); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
		return
	}

	if err := run(ctx, conf); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn().Msg("training interrupted")
			return
		}
		log.Fatal().Err(err).Msg("training failed")
	}
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Msgf("unknown log level %q, using info", level)
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func run(ctx context.Context, conf config.Config) error {
	store, err := checkpoint.Open(conf.CheckpointDir)
	if err != nil {
		return err
	}
	defer store.Close()

	pool := searcher.NewPool(conf.ThreadPoolSize)
	defer pool.Close()

	linear := nnet.LinearConfig{
		Size:         conf.N,
		LearningRate: conf.LearningRate,
		L2:           conf.L2,
		Epochs:       conf.Epochs,
	}
	// Both models share the store so the best model loads what the candidate saved
	candidate := nnet.NewLinear(linear, store)
	best := nnet.NewLinear(linear, store)

	l := learner.New(conf, candidate, best, pool)

	start := time.Now()
	log.Info().
		Int("board", conf.N).
		Int("inRow", conf.NInRow).
		Int("iterations", conf.NumIters).
		Uint64("seed", conf.Seed).
		Msg("starting training")
	learnErr := l.Learn(ctx)
	end := time.Now()

	iterations, contests := l.Records()
	if conf.RecordsDir != "" {
		if err := writeRecords(conf, iterations, contests, start, end); err != nil {
			log.Error().Err(err).Msg("failed to write records")
		}
	}
	printSummary(iterations, contests, end.Sub(start))
	return learnErr
}

func runThroughput(conf config.Config, games int) error {
	linear := nnet.LinearConfig{Size: conf.N, LearningRate: conf.LearningRate, L2: conf.L2, Epochs: conf.Epochs}
	model := nnet.NewLinear(linear, nil)
	configs := experiments.ThroughputConfigs(conf.NumMCTSSims)

	start := time.Now()
	gameRecords, moveRecords, err := experiments.RunThroughputExperiment(conf, model, configs, games)
	if err != nil {
		return err
	}
	if conf.RecordsDir == "" {
		return nil
	}

	writer, err := metrics.NewWriter(conf.RecordsDir)
	if err != nil {
		return err
	}
	if err := writer.WriteSetup(configs, start, time.Now()); err != nil {
		return err
	}
	if err := writer.WriteGames(gameRecords); err != nil {
		return err
	}
	if err := writer.WriteMoves(moveRecords); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("experiment records written")
	return nil
}

func writeRecords(conf config.Config, iterations []metrics.IterationRecord, contests []metrics.ContestRecord, start, end time.Time) error {
	writer, err := metrics.NewWriter(conf.RecordsDir)
	if err != nil {
		return err
	}
	if err := writer.WriteSetup(conf, start, end); err != nil {
		return err
	}
	if err := writer.WriteIterations(iterations); err != nil {
		return err
	}
	if err := writer.WriteContests(contests); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("records written")
	return nil
}

func printSummary(iterations []metrics.IterationRecord, contests []metrics.ContestRecord, elapsed time.Duration) {
	out := termenv.NewOutput(os.Stdout)
	accepted := 0
	for _, c := range contests {
		if c.Accepted {
			accepted++
		}
	}

	fmt.Fprintln(out, out.String("Training summary").Bold())
	fmt.Fprintf(out, "  iterations: %d in %s\n", len(iterations), elapsed.Round(time.Second))
	for _, c := range contests {
		decision := out.String("REJECT").Foreground(termenv.ANSIRed)
		if c.Accepted {
			decision = out.String("ACCEPT").Foreground(termenv.ANSIGreen)
		}
		fmt.Fprintf(out, "  iter %4d  %d/%d/%d  win rate %.2f  %s\n",
			c.Iteration, c.CandidateWins, c.IncumbentWins, c.Draws, c.WinRate, decision)
	}
	fmt.Fprintf(out, "  accepted %d of %d contests\n", accepted, len(contests))
}
