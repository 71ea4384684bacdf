package sand

import (
	"strconv"

	"mad-sand/internal/core"
	"mad-sand/internal/element"
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	census := w.Census()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				intParam("cell_size", "Chunk size", w.cfg.CellSize),
				intParam("workers", "Workers", w.Workers()),
				int64Param("seed", "Seed", w.seed),
				{Key: "tick", Label: "Tick", Type: core.ParamTypeInt, Value: strconv.FormatUint(w.tick, 10)},
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				floatParam("room_temp", "Room temperature", w.cfg.RoomTemp),
				floatParam("heat_rate", "Heat rate", params.HeatRate),
				floatParam("ember_chance", "Ember chance", params.EmberChance),
			},
		},
		{
			Name: "Brush",
			Params: []core.Parameter{
				choiceParam("brush", "Brush", w.brush.Element.String()),
				intParam("brush_radius", "Brush radius", w.brush.Radius),
			},
		},
		{
			Name: "Census",
			Params: []core.Parameter{
				intParam("burning", "Burning", w.Burning()),
			},
		},
	}
	for _, e := range element.All() {
		if e == element.Air {
			continue
		}
		groups[3].Params = append(groups[3].Params, intParam("count_"+e.String(), e.String(), census.Of(e)))
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "brush", Label: "Brush", Type: core.ParamTypeChoice, Options: element.Names()},
		{Key: "brush_radius", Label: "Brush radius", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 32, HasMin: true, HasMax: true},
		{Key: "heat_rate", Label: "Heat rate", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 2, HasMin: true, HasMax: true},
		{Key: "ember_chance", Label: "Ember chance", Type: core.ParamTypeFloat, Step: 0.001, Min: 0, Max: 0.1, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer control. It must not overlap a Step.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "brush_radius":
		if value < 0 {
			return false
		}
		w.brush.Radius = value
		return true
	}
	return false
}

// SetFloatParameter updates a float control. It must not overlap a Step.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "heat_rate":
		if value < 0 {
			return false
		}
		w.cfg.Params.HeatRate = value
	case "ember_chance":
		if value < 0 || value > 1 {
			return false
		}
		w.cfg.Params.EmberChance = value
	default:
		return false
	}
	w.applyParams()
	return true
}

// SetChoiceParameter picks the brush element by name.
func (w *World) SetChoiceParameter(key string, value string) bool {
	if key != "brush" {
		return false
	}
	e, err := element.Parse(value)
	if err != nil {
		return false
	}
	w.brush.Element = e
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func choiceParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeChoice,
		Value: value,
	}
}
