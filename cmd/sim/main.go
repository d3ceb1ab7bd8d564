// Command sim runs the dungeon headless with scripted or replayed input,
// for soak testing and profiling the system pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	"github.com/1siamBot/dungeon-engine/engine/config"
	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/log"
	"github.com/1siamBot/dungeon-engine/engine/replay"
	"github.com/1siamBot/dungeon-engine/engine/scene"
)

const defaultScript = "right:1,right+attack:2,down:1,left+interact:1,idle:2"

type options struct {
	config  string
	runs    int
	frames  int
	dt      float64
	seed    uint64
	script  string
	profile string
	record  string
	replay  string
}

type result struct {
	run      int
	frames   int
	playerHP int
	alive    bool
	entities int
	enemies  int
	stats    []core.SystemStats
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "", "settings file (YAML); built-in defaults when empty")
	flag.IntVar(&opts.runs, "runs", 1, "independent sessions to simulate in parallel")
	flag.IntVar(&opts.frames, "frames", 0, "frames per session; 0 runs the script to its end")
	flag.Float64Var(&opts.dt, "dt", 1.0/60, "seconds per frame")
	flag.Uint64Var(&opts.seed, "seed", 1, "particle seed of the first session")
	flag.StringVar(&opts.script, "script", defaultScript, "held actions, e.g. right+attack:1.5,idle:1")
	flag.StringVar(&opts.profile, "profile", "", "cpu or mem")
	flag.StringVar(&opts.record, "record", "", "write the first session's input to this replay file")
	flag.StringVar(&opts.replay, "replay", "", "play back a replay file instead of the script")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "dungeon-sim: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	switch opts.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", opts.profile)
	}
	if opts.runs < 1 || opts.dt <= 0 {
		return fmt.Errorf("runs and dt must be positive")
	}

	settings, err := config.LoadFile(opts.config)
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(settings.Log.Level)
	if err != nil {
		return err
	}
	logger, err := log.New(level, settings.Log.Encoding)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var rec *replay.Replay
	if opts.replay != "" {
		if rec, err = replay.Load(opts.replay); err != nil {
			return err
		}
		opts.runs, opts.dt, opts.seed, opts.frames = 1, rec.DT, rec.Seed, int(rec.Ticks)
		logger.Info("replaying", log.String("file", opts.replay), log.Uint64("ticks", rec.Ticks))
	} else if _, err := parseScript(opts.script); err != nil {
		// validate once before fanning out
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := make([]result, opts.runs)
	g, ctx := errgroup.WithContext(ctx)
	for i := range opts.runs {
		g.Go(func() error {
			res, err := simulate(ctx, i, opts, rec, settings, logger)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	start := time.Now()
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		logger.Info("session finished",
			log.Int("run", r.run),
			log.Int("frames", r.frames),
			log.Bool("playerAlive", r.alive),
			log.Int("playerHP", r.playerHP),
			log.Int("entities", r.entities),
			log.Int("enemies", r.enemies),
		)
	}
	for _, st := range results[0].stats {
		logger.Debug("system timing",
			log.String("system", st.Name),
			log.Any("executions", st.ExecutionCount),
			log.Duration("avg", st.AvgDuration),
			log.Duration("max", st.MaxDuration),
		)
	}
	logger.Info("simulation done", log.Int("runs", opts.runs), log.Duration("wall", time.Since(start)))
	return nil
}

func simulate(ctx context.Context, id int, opts options, rec *replay.Replay, s *config.Settings, l log.Log) (result, error) {
	lg := l.With(log.Int("run", id))
	seed := opts.seed + uint64(id)

	var (
		source core.ActionSource
		sc     *script
		frames = opts.frames
	)
	if rec != nil {
		source = replay.NewPlayer(rec)
	} else {
		var err error
		if sc, err = parseScript(opts.script); err != nil {
			return result{}, err
		}
		if frames <= 0 {
			frames = int(sc.Duration()/opts.dt) + 1
		}
		source = sc
	}
	var recorder *replay.Recorder
	if opts.record != "" && id == 0 {
		recorder = replay.NewRecorder(source, seed, opts.dt)
		source = recorder
	}

	// simulated time drives path throttling so sessions are reproducible
	var elapsed float64
	epoch := time.Unix(0, 0)
	clock := func() time.Time { return epoch.Add(time.Duration(elapsed * float64(time.Second))) }

	scenes := scene.NewManager(source, lg)
	gs := scene.NewGameScene(s, lg)
	gs.Seed = seed
	gs.Clock = clock
	if err := scenes.Load(gs); err != nil {
		return result{}, err
	}
	defer scenes.Unload()

	res := result{run: id}
	w := scenes.World()
	for res.frames < frames {
		if err := ctx.Err(); err != nil {
			return result{}, err
		}
		scenes.Update(opts.dt)
		elapsed += opts.dt
		if sc != nil {
			sc.Advance(opts.dt)
		}
		res.frames++
		if !w.Entities.Has(w.Player) {
			lg.Info("player died", log.Int("frame", res.frames))
			break
		}
	}

	if recorder != nil {
		if err := recorder.Replay().Save(opts.record); err != nil {
			return result{}, fmt.Errorf("save replay: %w", err)
		}
		lg.Info("replay saved", log.String("file", opts.record), log.Uint64("ticks", recorder.Replay().Ticks))
	}

	if hp, ok := core.Get[*core.Health](w.Components, w.Player); ok {
		res.alive = true
		res.playerHP = hp.Current
	}
	res.entities = w.Entities.Len()
	res.enemies = len(core.Entries[*core.Enemy](w.Components))
	res.stats = w.Scheduler.Stats()
	return res, nil
}
