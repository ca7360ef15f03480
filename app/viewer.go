// Package app is the interactive slider viewer: it owns the current
// parameter assignment, re-evaluates the blueprint when it changes and
// draws the chart plus a slider panel into the HAL framebuffer.
package app

import (
	"fmt"
	"os"
	"time"

	"curvelab/hal"
	"curvelab/internal/watch"
	"curvelab/plot/blueprint"
	"curvelab/plot/chart"
	"curvelab/plot/engine"
)

type Config struct {
	// BlueprintPath is only used for reloads; Source holds the initial text.
	BlueprintPath string
	Source        string
	// Overrides replace declared parameter values at startup.
	Overrides blueprint.Assignment

	Watch         bool
	WatchInterval time.Duration

	GridResolution int
	Style          chart.Style
}

type Viewer struct {
	h      hal.HAL
	log    hal.Logger
	fb     hal.Framebuffer
	events <-chan hal.KeyEvent

	disp   *chart.FramebufferDisplay
	raster *chart.Raster
	eng    *engine.Engine
	cfg    Config

	bp     *blueprint.Blueprint
	values blueprint.Assignment
	sel    int

	last    *engine.Result
	err     error
	loadErr error
	lastLog string
	dirty   bool

	reloads chan string
	watcher *watch.FileWatcher

	panicked bool
}

// New builds a viewer for cfg.Source. The first frame is drawn by the first Step.
func New(h hal.HAL, cfg Config) *Viewer {
	v := &Viewer{
		h:       h,
		cfg:     cfg,
		eng:     engine.New(engine.Options{GridResolution: cfg.GridResolution}),
		reloads: make(chan string, 1),
		dirty:   true,
	}
	if h != nil {
		v.log = h.Logger()
		if d := h.Display(); d != nil {
			v.fb = d.Framebuffer()
		}
		if in := h.Input(); in != nil {
			if kbd := in.Keyboard(); kbd != nil {
				v.events = kbd.Events()
			}
		}
	}
	if cfg.Style == (chart.Style{}) {
		v.cfg.Style = chart.DefaultStyle()
	}
	if v.fb != nil {
		v.disp = chart.NewFramebufferDisplay(v.fb)
		v.raster = chart.NewRaster(v.disp, v.cfg.Style)
	}

	v.load(blueprint.Parse(cfg.Source), nil)
	for name, val := range cfg.Overrides {
		p, ok := v.bp.Param(name)
		if !ok {
			v.logf("viewer: -set %s ignored: no such parameter", name)
			continue
		}
		v.values[name] = p.Clamp(val)
	}

	if cfg.Watch && cfg.BlueprintPath != "" {
		v.watcher = watch.NewFileWatcher([]string{cfg.BlueprintPath}, cfg.WatchInterval, func(path string) {
			select {
			case v.reloads <- path:
			default:
			}
		})
		v.watcher.Start()
		v.logf("viewer: watching %s", cfg.BlueprintPath)
	}
	return v
}

// Close stops the file watcher.
func (v *Viewer) Close() {
	if v.watcher != nil {
		v.watcher.Stop()
	}
}

// Blueprint returns the blueprint currently shown.
func (v *Viewer) Blueprint() *blueprint.Blueprint { return v.bp }

// Values returns a copy of the current assignment.
func (v *Viewer) Values() blueprint.Assignment { return v.values.Clone() }

// Selected returns the index of the focused slider.
func (v *Viewer) Selected() int { return v.sel }

// Result returns the last successful evaluation, if any.
func (v *Viewer) Result() *engine.Result { return v.last }

// Err returns the error of the latest evaluation, or failing that of the
// latest reload.
func (v *Viewer) Err() error {
	if v.err != nil {
		return v.err
	}
	return v.loadErr
}

// Step handles pending input and reloads and redraws when something changed.
// It returns hal.ErrStop when the user asks to quit.
func (v *Viewer) Step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			v.panicked = true
			v.showPanic(r)
			err = nil
		}
	}()

	if stop := v.drainKeys(); stop {
		return hal.ErrStop
	}
	if v.panicked {
		return nil
	}

	select {
	case path := <-v.reloads:
		v.reloadFile(path)
	default:
	}

	if !v.dirty {
		return nil
	}
	v.dirty = false
	v.evaluate()
	return v.render()
}

func (v *Viewer) drainKeys() (stop bool) {
	if v.events == nil {
		return false
	}
	for {
		select {
		case ev, ok := <-v.events:
			if !ok {
				v.events = nil
				return false
			}
			if v.handleKey(ev) {
				return true
			}
		default:
			return false
		}
	}
}

func (v *Viewer) handleKey(ev hal.KeyEvent) (stop bool) {
	if !ev.Press {
		return false
	}
	if ev.Code == hal.KeyEscape || (ev.Code == hal.KeyUnknown && ev.Rune == 'q') {
		return true
	}
	if v.panicked {
		return false
	}

	n := len(v.bp.Params)
	switch ev.Code {
	case hal.KeyUp:
		if v.sel > 0 {
			v.sel--
			v.dirty = true
		}
	case hal.KeyDown:
		if v.sel < n-1 {
			v.sel++
			v.dirty = true
		}
	case hal.KeyTab:
		if n > 0 {
			v.sel = (v.sel + 1) % n
			v.dirty = true
		}
	case hal.KeyLeft:
		v.nudge(-1)
	case hal.KeyRight:
		v.nudge(1)
	case hal.KeyPageDown:
		v.nudge(-10)
	case hal.KeyPageUp:
		v.nudge(10)
	case hal.KeyHome:
		if p, ok := v.selected(); ok {
			v.set(p.Name, p.Min)
		}
	case hal.KeyEnd:
		if p, ok := v.selected(); ok {
			v.set(p.Name, p.Max)
		}
	case hal.KeyEnter:
		v.reset()
	case hal.KeyUnknown:
		if ev.Rune == 'r' {
			v.reset()
		}
	}
	return false
}

func (v *Viewer) selected() (blueprint.Param, bool) {
	if v.sel < 0 || v.sel >= len(v.bp.Params) {
		return blueprint.Param{}, false
	}
	return v.bp.Params[v.sel], true
}

func (v *Viewer) nudge(n int) {
	p, ok := v.selected()
	if !ok {
		return
	}
	v.set(p.Name, stepValue(p, v.values[p.Name], n))
}

func (v *Viewer) set(name string, val float64) {
	if old, ok := v.values[name]; ok && old == val {
		return
	}
	v.values[name] = val
	v.dirty = true
}

func (v *Viewer) reset() {
	v.values = v.bp.Defaults()
	v.dirty = true
}

// Reload replaces the blueprint with one parsed from src. Parameters that
// still exist keep their current value, clamped to the new range.
func (v *Viewer) Reload(src string) {
	v.load(blueprint.Parse(src), v.values)
	v.loadErr = nil
	v.logf("viewer: reloaded %q", v.bp.Title)
}

func (v *Viewer) reloadFile(path string) {
	v.logf("watch: %s changed", path)
	b, err := os.ReadFile(path)
	if err != nil {
		v.loadErr = fmt.Errorf("reload: %w", err)
		v.logf("viewer: %v", v.loadErr)
		v.dirty = true
		return
	}
	v.Reload(string(b))
}

func (v *Viewer) load(bp *blueprint.Blueprint, keep blueprint.Assignment) {
	values := bp.Defaults()
	for _, p := range bp.Params {
		if old, ok := keep[p.Name]; ok {
			values[p.Name] = p.Clamp(old)
		}
	}
	for _, w := range bp.Warnings {
		v.logf("blueprint: %s", w)
	}

	v.bp = bp
	v.values = values
	if v.sel >= len(bp.Params) {
		v.sel = len(bp.Params) - 1
	}
	if v.sel < 0 {
		v.sel = 0
	}
	v.dirty = true
}

func (v *Viewer) evaluate() {
	res, err := v.eng.Evaluate(v.bp, v.values)
	if err != nil {
		v.err = err
		if msg := err.Error(); msg != v.lastLog {
			v.lastLog = msg
			v.logf("viewer: %s", msg)
		}
		return
	}
	v.last = res
	v.err = nil
	v.lastLog = ""
}

func (v *Viewer) logf(format string, args ...any) {
	if v.log == nil {
		return
	}
	v.log.WriteLineString(fmt.Sprintf(format, args...))
}

