package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"curvelab/app"
	"curvelab/hal"
	"curvelab/internal/buildinfo"
	"curvelab/internal/config"
	"curvelab/plot/blueprint"
	"curvelab/plot/expr"
)

// assignFlag collects repeated -set name=value flags.
type assignFlag blueprint.Assignment

func (a assignFlag) String() string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%g", k, a[k])
	}
	return strings.Join(parts, ",")
}

func (a assignFlag) Set(s string) error {
	name, val, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || !expr.IsIdent(name) {
		return fmt.Errorf("want name=value, got %q", s)
	}
	f, ok := blueprint.ParseNumber(strings.TrimSpace(val))
	if !ok {
		return fmt.Errorf("%s: %q is not a finite number", name, val)
	}
	a[name] = f
	return nil
}

type options struct {
	blueprint string
	config    string
	watch     bool
	overrides assignFlag
	headless  hal.HeadlessConfig
}

func main() {
	opts := options{overrides: assignFlag{}}
	var showVersion bool
	flag.StringVar(&opts.blueprint, "blueprint", "", "Blueprint file to plot (or pass it as the first argument).")
	flag.StringVar(&opts.config, "config", "", "Optional YAML viewer config.")
	flag.Var(opts.overrides, "set", "Override a parameter, name=value (repeatable).")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the blueprint when the file changes.")
	flag.BoolVar(&opts.headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&opts.headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&opts.headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run until interrupted).")
	flag.StringVar(&opts.headless.Snapshot, "out", "", "Write the final frame to this PNG file (headless mode).")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit.")
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.Long())
		return
	}
	if opts.blueprint == "" && flag.NArg() > 0 {
		opts.blueprint = flag.Arg(0)
	}
	if opts.blueprint == "" {
		fmt.Fprintln(os.Stderr, "curvelab: no blueprint given")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "curvelab:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	conf, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	style, err := conf.Theme.Style()
	if err != nil {
		return err
	}
	src, err := os.ReadFile(opts.blueprint)
	if err != nil {
		return fmt.Errorf("read blueprint: %w", err)
	}

	appCfg := app.Config{
		BlueprintPath:  opts.blueprint,
		Source:         string(src),
		Overrides:      blueprint.Assignment(opts.overrides),
		Watch:          opts.watch,
		WatchInterval:  conf.Watch.Interval,
		GridResolution: conf.Grid.Resolution,
		Style:          style,
	}

	var viewer *app.Viewer
	defer func() {
		if viewer != nil {
			viewer.Close()
		}
	}()
	newApp := func(h hal.HAL) func() error {
		h.Logger().WriteLineString("curvelab " + buildinfo.Short() + ": " + opts.blueprint)
		viewer = app.New(h, appCfg)
		return viewer.Step
	}

	if opts.headless.Enabled {
		opts.headless.Width = conf.Window.Width
		opts.headless.Height = conf.Window.Height
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, opts.headless); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	return hal.RunWindow(hal.WindowConfig{
		Title:  "curvelab " + buildinfo.Short(),
		Width:  conf.Window.Width,
		Height: conf.Window.Height,
		Scale:  conf.Window.Scale,
	}, newApp)
}
