package config

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// LuaConfigParser evaluates Lua scene scripts. A script assigns the global
// table panel = { window = {...}, high_contrast = bool, widgets = {...} }.
// Scripts run with CPU and memory limits.
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaConfigParser creates a parser with a fresh Lua runtime whose print
// output is discarded.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a parser writing print output to
// stdout.
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)
	return &LuaConfigParser{runtime: runtime, cleanup: cleanup}, nil
}

// Parse evaluates content and extracts the panel table on top of the
// defaults.
func (p *LuaConfigParser) Parse(content []byte) (*Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.runtime == nil {
		return nil, fmt.Errorf("lua parser closed")
	}

	env := p.runtime.GlobalEnv()
	env.Set(rt.StringValue("panel"), rt.NilValue)

	closure, err := p.runtime.CompileAndLoadLuaChunk("panel", content, rt.TableValue(env))
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua scene: %w", err)
	}

	p.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    10_000_000,
			Memory: 50 * 1024 * 1024,
		},
	})
	defer p.runtime.PopContext()

	if _, err := rt.Call1(p.runtime.MainThread(), rt.FunctionValue(closure)); err != nil {
		return nil, fmt.Errorf("failed to execute Lua scene: %w", err)
	}

	cfg := DefaultConfig()
	val := env.Get(rt.StringValue("panel"))
	if val == rt.NilValue {
		return &cfg, nil
	}
	table, ok := val.TryTable()
	if !ok {
		return nil, fmt.Errorf("panel is not a table")
	}
	if err := extractPanel(&cfg, table); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Close releases the Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	p.runtime = nil
	return nil
}

func extractPanel(cfg *Config, table *rt.Table) error {
	if v := getTableBool(table, "high_contrast"); v != nil {
		cfg.HighContrast = *v
	}

	if wv := table.Get(rt.StringValue("window")); wv != rt.NilValue {
		wt, ok := wv.TryTable()
		if !ok {
			return fmt.Errorf("panel.window is not a table")
		}
		extractWindow(&cfg.Window, wt)
	}

	wv := table.Get(rt.StringValue("widgets"))
	if wv == rt.NilValue {
		return nil
	}
	list, ok := wv.TryTable()
	if !ok {
		return fmt.Errorf("panel.widgets is not a table")
	}
	for i := int64(1); ; i++ {
		item := list.Get(rt.IntValue(i))
		if item == rt.NilValue {
			break
		}
		t, ok := item.TryTable()
		if !ok {
			return fmt.Errorf("panel.widgets[%d] is not a table", i)
		}
		var w WidgetConfig
		extractWidget(&w, t)
		cfg.Widgets = append(cfg.Widgets, w)
	}
	return nil
}

func extractWindow(w *WindowConfig, t *rt.Table) {
	setString(t, "title", &w.Title)
	setInt(t, "width", &w.Width)
	setInt(t, "height", &w.Height)
	setString(t, "background", &w.Background)
	setString(t, "back_color", &w.BackColor)
	setString(t, "color1", &w.Color1)
	setString(t, "color2", &w.Color2)
	setString(t, "border_color", &w.BorderColor)
	setBool(t, "argb_visual", &w.ARGBVisual)
	setInt(t, "argb_value", &w.ARGBValue)
	setString(t, "image", &w.Image)
	setString(t, "layout", &w.Layout)
	setString(t, "right_to_left", &w.RightToLeft)
	setBool(t, "mirrored", &w.Mirrored)
	setBool(t, "skip_taskbar", &w.SkipTaskbar)
	setBool(t, "skip_pager", &w.SkipPager)
	setBool(t, "sticky", &w.Sticky)
	setBool(t, "below", &w.Below)
}

func extractWidget(w *WidgetConfig, t *rt.Table) {
	setString(t, "name", &w.Name)
	setString(t, "kind", &w.Kind)
	setInt(t, "x", &w.X)
	setInt(t, "y", &w.Y)
	setInt(t, "width", &w.Width)
	setInt(t, "height", &w.Height)
	setString(t, "text", &w.Text)
	setString(t, "back_color", &w.BackColor)
	setString(t, "fore_color", &w.ForeColor)
	setString(t, "color1", &w.Color1)
	setString(t, "color2", &w.Color2)
	setString(t, "image", &w.Image)
	setString(t, "layout", &w.Layout)
	setString(t, "right_to_left", &w.RightToLeft)
	setBool(t, "auto_scroll", &w.AutoScroll)
	setInt(t, "scroll_x", &w.ScrollX)
	setInt(t, "scroll_y", &w.ScrollY)
	setString(t, "parent", &w.Parent)
}

func setString(t *rt.Table, key string, dst *string) {
	if v := getTableString(t, key); v != nil {
		*dst = *v
	}
}

func setInt(t *rt.Table, key string, dst *int) {
	if v := getTableInt(t, key); v != nil {
		*dst = *v
	}
}

func setBool(t *rt.Table, key string, dst *bool) {
	if v := getTableBool(t, key); v != nil {
		*dst = *v
	}
}

// getTableBool retrieves a boolean value from a Lua table. The strings
// "yes", "true", "on" and "1" count as true.
// Returns nil if the key doesn't exist or is not a boolean.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if b, ok := val.TryBool(); ok {
		return &b
	}
	if s, ok := val.TryString(); ok {
		b := parseBool(s)
		return &b
	}
	return nil
}

// getTableString retrieves a string value from a Lua table.
// Returns nil if the key doesn't exist or is not a string.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if s, ok := val.TryString(); ok {
		return &s
	}
	return nil
}

// getTableInt retrieves an int value from a Lua table. Floats are
// truncated.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}
	return nil
}
