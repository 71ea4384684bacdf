package sand

import "mad-sand/internal/core"

// New builds a world from flag-style options with the given scene applied.
func New(cfg map[string]string, name string, scene Scene) (*World, error) {
	c, err := FromMap(cfg)
	if err != nil {
		return nil, err
	}
	w, err := NewWorld(c, nil)
	if err != nil {
		return nil, err
	}
	if scene != nil || name != "" {
		w.SetScene(name, scene)
		w.Reset(c.Seed)
	}
	return w, nil
}

func init() {
	core.Register("sand", func(cfg map[string]string) (core.Sim, error) {
		return New(cfg, "", nil)
	})
}
