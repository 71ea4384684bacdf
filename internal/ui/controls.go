package ui

import (
	"image"
	"math"
	"strconv"

	"mad-sand/internal/core"
)

// controlRow is one adjustable HUD line: the control and the last value the
// sim reported for it.
type controlRow struct {
	ctrl core.ParameterControl

	known  bool
	i      int
	f      float64
	choice int

	top         int
	minus, plus image.Rectangle
}

func layoutRows(ctrls []core.ParameterControl, width int) []controlRow {
	rows := make([]controlRow, len(ctrls))
	right := width - panelPadding
	for i, c := range ctrls {
		top := controlsTop + i*lineHeight
		y := top + (lineHeight-buttonSize)/2
		plus := image.Rect(right-buttonSize, y, right, y+buttonSize)
		minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
		rows[i] = controlRow{ctrl: c, choice: -1, top: top, minus: minus, plus: plus}
	}
	return rows
}

// load reads the row's value out of a parameter snapshot.
func (r *controlRow) load(snap core.ParameterSnapshot) {
	r.known = false
	p, ok := snap.Lookup(r.ctrl.Key)
	if !ok {
		return
	}
	switch r.ctrl.Type {
	case core.ParamTypeInt:
		v, err := strconv.Atoi(p.Value)
		r.i, r.known = v, err == nil
	case core.ParamTypeFloat:
		v, err := strconv.ParseFloat(p.Value, 64)
		r.f, r.known = v, err == nil
	case core.ParamTypeChoice:
		r.choice = indexOf(r.ctrl.Options, p.Value)
		r.known = r.choice >= 0
	}
}

// step returns the row moved one increment in dir, clamped to the control's
// bounds. ok is false when the value would not change.
func (r controlRow) step(dir int) (next controlRow, ok bool) {
	if !r.known || dir == 0 {
		return r, false
	}
	next = r
	c := r.ctrl
	switch c.Type {
	case core.ParamTypeInt:
		inc := max(int(math.Round(c.Step)), 1)
		v := r.i + dir*inc
		if c.HasMin {
			v = max(v, int(math.Round(c.Min)))
		}
		if c.HasMax {
			v = min(v, int(math.Round(c.Max)))
		}
		next.i = v
		return next, v != r.i
	case core.ParamTypeFloat:
		v := r.f + float64(dir)*floatStep(c)
		if c.HasMin {
			v = math.Max(v, c.Min)
		}
		if c.HasMax {
			v = math.Min(v, c.Max)
		}
		next.f = v
		return next, math.Abs(v-r.f) >= 1e-9
	case core.ParamTypeChoice:
		next.choice = cycleChoice(len(c.Options), r.choice, dir)
		return next, next.choice != r.choice
	}
	return r, false
}

// text is the value column of the row.
func (r controlRow) text() string {
	if !r.known {
		return "--"
	}
	switch r.ctrl.Type {
	case core.ParamTypeInt:
		return strconv.Itoa(r.i)
	case core.ParamTypeFloat:
		return strconv.FormatFloat(r.f, 'f', floatPrecision(floatStep(r.ctrl)), 64)
	case core.ParamTypeChoice:
		return r.ctrl.Options[r.choice]
	}
	return "--"
}

func floatStep(c core.ParameterControl) float64 {
	if c.Step <= 0 {
		return 0.05
	}
	return c.Step
}

func floatPrecision(step float64) int {
	switch {
	case step < 0.001:
		return 4
	case step < 0.01:
		return 3
	case step < 0.1:
		return 2
	}
	return 1
}

// setters holds whichever parameter setters the sim implements.
type setters struct {
	ints    core.IntParameterSetter
	floats  core.FloatParameterSetter
	choices core.ChoiceParameterSetter
}

func settersOf(sim any) setters {
	var s setters
	s.ints, _ = sim.(core.IntParameterSetter)
	s.floats, _ = sim.(core.FloatParameterSetter)
	s.choices, _ = sim.(core.ChoiceParameterSetter)
	return s
}

func (s setters) handles(t core.ParamType) bool {
	switch t {
	case core.ParamTypeInt:
		return s.ints != nil
	case core.ParamTypeFloat:
		return s.floats != nil
	case core.ParamTypeChoice:
		return s.choices != nil
	}
	return false
}

// commit pushes the row's value to the sim and reports whether it took it.
func (s setters) commit(r controlRow) bool {
	if !s.handles(r.ctrl.Type) {
		return false
	}
	switch r.ctrl.Type {
	case core.ParamTypeInt:
		return s.ints.SetIntParameter(r.ctrl.Key, r.i)
	case core.ParamTypeFloat:
		return s.floats.SetFloatParameter(r.ctrl.Key, r.f)
	default:
		return s.choices.SetChoiceParameter(r.ctrl.Key, r.ctrl.Options[r.choice])
	}
}

// nudge steps row in dir and commits it. The row only changes when the sim
// accepts the new value.
func (s setters) nudge(row *controlRow, dir int) bool {
	next, ok := row.step(dir)
	if !ok || !s.commit(next) {
		return false
	}
	*row = next
	return true
}

func indexOf(options []string, value string) int {
	for i, o := range options {
		if o == value {
			return i
		}
	}
	return -1
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	statusSpacing  = 18
	controlsTop    = panelPadding + headerBaseline + 14
)
