package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"curvelab/hal"
	"curvelab/plot/engine"
)

type fakeHAL struct {
	logs bytes.Buffer
	log  hal.Logger
	fb   hal.Framebuffer
	keys chan hal.KeyEvent
}

func newFakeHAL(w, h int) *fakeHAL {
	f := &fakeHAL{fb: hal.NewFramebuffer(w, h), keys: make(chan hal.KeyEvent, 32)}
	f.log = hal.NewLogger(&f.logs)
	return f
}

func (f *fakeHAL) Logger() hal.Logger           { return f.log }
func (f *fakeHAL) Display() hal.Display         { return f }
func (f *fakeHAL) Input() hal.Input             { return f }
func (f *fakeHAL) Framebuffer() hal.Framebuffer { return f.fb }
func (f *fakeHAL) Keyboard() hal.Keyboard       { return f }
func (f *fakeHAL) Events() <-chan hal.KeyEvent  { return f.keys }

func (f *fakeHAL) press(codes ...hal.KeyCode) {
	for _, c := range codes {
		f.keys <- hal.KeyEvent{Code: c, Press: true}
	}
}

const sliderBlueprint = `title: Sliders
equation: a * x + b
steps: 10
params:
  a: { label: "slope", min: -2, max: 2, step: 0.5, value: 1 }
  b: { min: 0, max: 3, step: 1, value: 0 }
vars:
  s: a + b
`

func mustStep(t *testing.T, v *Viewer) {
	t.Helper()
	if err := v.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestViewer_FirstStepEvaluates(t *testing.T) {
	f := newFakeHAL(200, 160)
	v := New(f, Config{Source: sliderBlueprint})
	defer v.Close()

	mustStep(t, v)
	res := v.Result()
	if res == nil {
		t.Fatalf("no result after first step (err=%v)", v.Err())
	}
	if res.Series.Kind != engine.SeriesCurve || len(res.Series.Points) != 11 {
		t.Fatalf("series = %v with %d points", res.Series.Kind, len(res.Series.Points))
	}
	if len(res.Vars) != 1 || res.Vars[0].Value != 1 {
		t.Fatalf("vars = %+v", res.Vars)
	}
}

func TestViewer_SliderKeys(t *testing.T) {
	f := newFakeHAL(200, 160)
	v := New(f, Config{Source: sliderBlueprint})
	defer v.Close()
	mustStep(t, v)

	f.press(hal.KeyRight, hal.KeyRight)
	mustStep(t, v)
	if got := v.Values()["a"]; got != 2 {
		t.Fatalf("a = %v, want 2", got)
	}

	f.press(hal.KeyRight)
	mustStep(t, v)
	if got := v.Values()["a"]; got != 2 {
		t.Fatalf("a = %v, want 2 (clamped)", got)
	}

	f.press(hal.KeyDown, hal.KeyEnd)
	mustStep(t, v)
	if v.Selected() != 1 {
		t.Fatalf("selected = %d", v.Selected())
	}
	if got := v.Values()["b"]; got != 3 {
		t.Fatalf("b = %v, want 3", got)
	}
	if got := v.Result().Vars[0].Value; got != 5 {
		t.Fatalf("s = %v, want 5", got)
	}

	f.press(hal.KeyHome)
	mustStep(t, v)
	if got := v.Values()["b"]; got != 0 {
		t.Fatalf("b = %v, want 0", got)
	}

	f.press(hal.KeyDown)
	mustStep(t, v)
	if v.Selected() != 1 {
		t.Fatalf("selected = %d, want to stay on the last slider", v.Selected())
	}
	f.press(hal.KeyTab)
	mustStep(t, v)
	if v.Selected() != 0 {
		t.Fatalf("tab selected = %d, want wrap to 0", v.Selected())
	}

	f.press(hal.KeyEnter)
	mustStep(t, v)
	if got := v.Values(); got["a"] != 1 || got["b"] != 0 {
		t.Fatalf("after reset = %v", got)
	}
}

func TestViewer_EscapeStops(t *testing.T) {
	f := newFakeHAL(100, 100)
	v := New(f, Config{Source: sliderBlueprint})
	defer v.Close()

	f.press(hal.KeyEscape)
	if err := v.Step(); !errors.Is(err, hal.ErrStop) {
		t.Fatalf("Step = %v, want ErrStop", err)
	}
}

func TestViewer_KeepsLastGoodResultOnError(t *testing.T) {
	f := newFakeHAL(200, 160)
	src := "equation: sqrt(c) + x * 0\nsteps: 2\nparams:\n  c: { min: -1, max: 1, step: 1, value: 1 }\nvars:\n  d: log(c - 1) + undefined_name\n"
	v := New(f, Config{Source: src})
	defer v.Close()

	mustStep(t, v)
	if v.Err() == nil || !errors.Is(v.Err(), engine.ErrEquation) {
		t.Fatalf("err = %v, want equation error", v.Err())
	}
	if v.Result() != nil {
		t.Fatalf("unexpected result")
	}
	if !strings.Contains(f.logs.String(), "viewer: equation error") {
		t.Fatalf("log = %q", f.logs.String())
	}

	v.Reload("equation: sqrt(c) + x * 0\nsteps: 2\nparams:\n  c: { min: -1, max: 1, step: 1, value: 1 }\n")
	mustStep(t, v)
	good := v.Result()
	if good == nil || v.Err() != nil {
		t.Fatalf("result=%v err=%v", good, v.Err())
	}

	v.Reload("equation: sqrt(c) + nope\nsteps: 2\nparams:\n  c: { min: -1, max: 1, step: 1, value: 1 }\n")
	mustStep(t, v)
	if v.Err() == nil {
		t.Fatalf("expected error after bad reload")
	}
	if v.Result() != good {
		t.Fatalf("last good result was replaced")
	}
}

func TestViewer_ReloadKeepsClampedValues(t *testing.T) {
	f := newFakeHAL(200, 160)
	v := New(f, Config{Source: sliderBlueprint})
	defer v.Close()

	f.press(hal.KeyRight)
	mustStep(t, v)
	if got := v.Values()["a"]; got != 1.5 {
		t.Fatalf("a = %v", got)
	}

	v.Reload("equation: a * x + c\nparams:\n  a: { min: 0, max: 1, value: 0 }\n  c: { value: 4 }\n")
	mustStep(t, v)
	vals := v.Values()
	if vals["a"] != 1 || vals["c"] != 4 {
		t.Fatalf("values = %v", vals)
	}
	if _, ok := vals["b"]; ok {
		t.Fatalf("removed parameter b still present: %v", vals)
	}
	if v.Selected() != 0 {
		t.Fatalf("selected = %d", v.Selected())
	}
}

func TestViewer_Overrides(t *testing.T) {
	f := newFakeHAL(200, 160)
	v := New(f, Config{Source: sliderBlueprint, Overrides: map[string]float64{"a": -7, "zz": 1}})
	defer v.Close()

	if got := v.Values()["a"]; got != -2 {
		t.Fatalf("a = %v, want -2 (clamped override)", got)
	}
	if !strings.Contains(f.logs.String(), "-set zz ignored") {
		t.Fatalf("log = %q", f.logs.String())
	}
}

func TestViewer_DrawsSeriesColor(t *testing.T) {
	f := newFakeHAL(240, 200)
	v := New(f, Config{Source: "equation: x\ncolor: \"#00ff00\"\n"})
	defer v.Close()
	mustStep(t, v)

	want := hal.RGB565(0, 0xFF, 0)
	buf := f.fb.Buffer()
	n := 0
	for i := 0; i+1 < len(buf); i += 2 {
		if uint16(buf[i])|uint16(buf[i+1])<<8 == want {
			n++
		}
	}
	if n < 20 {
		t.Fatalf("found %d series pixels", n)
	}
}

func TestViewer_WatchReloadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.bp")
	if err := os.WriteFile(path, []byte("title: one\nequation: x\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f := newFakeHAL(120, 100)
	v := New(f, Config{BlueprintPath: path, Source: "title: one\nequation: x\n", Watch: true, WatchInterval: 5 * time.Millisecond})
	defer v.Close()
	mustStep(t, v)

	if err := os.WriteFile(path, []byte("title: two\nequation: x\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mustStep(t, v)
		if v.Blueprint().Title == "two" {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("title = %q after watch", v.Blueprint().Title)
}

func TestViewer_PanicScreen(t *testing.T) {
	f := newFakeHAL(120, 100)
	v := New(f, Config{Source: "equation: x\n"})
	defer v.Close()

	v.bp = nil
	if err := v.Step(); err != nil {
		t.Fatalf("Step after panic = %v", err)
	}
	if !v.panicked {
		t.Fatalf("panic not recorded")
	}
	if !strings.Contains(f.logs.String(), "viewer: panic:") {
		t.Fatalf("log = %q", f.logs.String())
	}
	f.press(hal.KeyEscape)
	if err := v.Step(); !errors.Is(err, hal.ErrStop) {
		t.Fatalf("Step = %v, want ErrStop", err)
	}
}

func TestFirstVisible(t *testing.T) {
	tests := []struct {
		sel, n, rows, want int
	}{
		{0, 3, 6, 0},
		{0, 10, 4, 0},
		{5, 10, 4, 3},
		{9, 10, 4, 6},
		{3, 10, 0, 0},
	}
	for _, tt := range tests {
		if got := firstVisible(tt.sel, tt.n, tt.rows); got != tt.want {
			t.Fatalf("firstVisible(%d,%d,%d) = %d, want %d", tt.sel, tt.n, tt.rows, got, tt.want)
		}
	}
}
