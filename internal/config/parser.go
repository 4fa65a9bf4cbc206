package config

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a scene file syntax.
type Format string

const (
	// FormatLua is a Lua script assigning the panel table.
	FormatLua Format = "lua"
	// FormatYAML is a YAML document.
	FormatYAML Format = "yaml"
	// FormatTOML is a TOML document.
	FormatTOML Format = "toml"
)

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		return FormatLua, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown config format for %s (expected .lua, .yaml, .yml or .toml)", path)
	}
}

// Parser reads scene files of every supported format. Parsed scenes have
// environment variables expanded.
type Parser struct {
	luaParser *LuaConfigParser
}

// NewParser creates a Parser.
func NewParser() (*Parser, error) {
	luaParser, err := NewLuaConfigParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create Lua parser: %w", err)
	}
	return &Parser{luaParser: luaParser}, nil
}

// ParseFile reads and parses a scene file. Relative image paths are
// resolved against the file's directory.
func (p *Parser) ParseFile(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := p.Parse(content, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// ParseFromFS reads and parses a scene file from fsys. Image paths are
// left as written.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS %s: %w", path, err)
	}
	return p.Parse(content, format)
}

// ParseReader parses a scene from r in the given format.
func (p *Parser) ParseReader(r io.Reader, format Format) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return p.Parse(content, format)
}

// Parse parses content in the given format on top of DefaultConfig.
func (p *Parser) Parse(content []byte, format Format) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch format {
	case FormatLua:
		cfg, err = p.luaParser.Parse(content)
	case FormatYAML:
		cfg, err = parseYAML(content)
	case FormatTOML:
		cfg, err = parseTOML(content)
	default:
		return nil, fmt.Errorf("unknown format: %s (expected lua, yaml or toml)", format)
	}
	if err != nil {
		return nil, err
	}
	ExpandEnvConfig(cfg)
	return cfg, nil
}

// Close releases resources associated with the parser.
func (p *Parser) Close() error {
	if p.luaParser != nil {
		return p.luaParser.Close()
	}
	return nil
}

func parseYAML(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse YAML scene: %w", err)
	}
	return &cfg, nil
}

func parseTOML(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(content), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML scene: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown TOML keys: %v", undecoded)
	}
	return &cfg, nil
}

// resolvePaths makes relative image paths relative to dir.
func (c *Config) resolvePaths(dir string) {
	resolve := func(p *string) {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	resolve(&c.Window.Image)
	for i := range c.Widgets {
		resolve(&c.Widgets[i].Image)
	}
}

// parseBool interprets yes/true/on/1 as true, case-insensitively.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "on", "1":
		return true
	default:
		return false
	}
}
