package director

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"
)

type waveValues struct {
	quota    int
	interval float64
}

// ScriptRules evaluates a tengo script that reads `wave` and
// `base_interval` and assigns `quota` and `interval`. A failing script
// falls back to DefaultRules for that wave.
type ScriptRules struct {
	compiled *tengo.Compiled
	fallback DefaultRules
	cache    map[int]waveValues
	logger   *zap.Logger
}

// NewScriptRules compiles src once; every wave reruns the compiled program.
func NewScriptRules(src []byte, baseInterval float64, logger *zap.Logger) (*ScriptRules, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for name, v := range map[string]any{
		"wave":          0,
		"base_interval": baseInterval,
		"quota":         0,
		"interval":      0.0,
	} {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("director: script add %s: %w", name, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("director: compile wave script: %w", err)
	}
	return &ScriptRules{
		compiled: compiled,
		fallback: DefaultRules{BaseInterval: baseInterval},
		cache:    make(map[int]waveValues),
		logger:   logger,
	}, nil
}

func (r *ScriptRules) Quota(n int) int {
	return r.eval(n).quota
}

func (r *ScriptRules) Interval(n int) float64 {
	return r.eval(n).interval
}

func (r *ScriptRules) eval(n int) waveValues {
	if v, ok := r.cache[n]; ok {
		return v
	}
	v, err := r.run(n)
	if err != nil {
		r.logger.Warn("wave script failed, using built-in rules", zap.Int("wave", n), zap.Error(err))
		v = waveValues{quota: r.fallback.Quota(n), interval: r.fallback.Interval(n)}
	}
	r.cache[n] = v
	return v
}

func (r *ScriptRules) run(n int) (waveValues, error) {
	if err := r.compiled.Set("wave", n); err != nil {
		return waveValues{}, err
	}
	if err := r.compiled.Run(); err != nil {
		return waveValues{}, err
	}
	quota := r.compiled.Get("quota").Int()
	interval := r.compiled.Get("interval").Float()
	if quota <= 0 || interval <= 0 {
		return waveValues{}, fmt.Errorf("invalid wave %d: quota=%d interval=%v", n, quota, interval)
	}
	return waveValues{quota: quota, interval: interval}, nil
}
