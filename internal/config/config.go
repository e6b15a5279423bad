// internal/config/config.go
//
// This package handles configuration and the .planboard directory structure.
// Every project that runs planboard gets a .planboard/ folder in its root
// holding config.yaml and the log directory. Plan state itself is never
// written here.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/planboard/internal/plan"
)

const (
	// Dir is the name of the directory we create in each project
	Dir = ".planboard"

	// LogLinesEnv overrides ui.log_lines when set to a non-negative integer.
	LogLinesEnv = "PLANBOARD_LOG_LINES"

	defaultTitle    = "Subscription Manager"
	defaultLogLines = 6
	maxLogLines     = 50
)

const defaultProjectConfigYAML = `# planboard configuration
version: 1

# Plans loaded into the in-memory catalogue at startup. Changes made in the
# console are not written back here.
seed:
  - id: 1
    name: Pro Annual
    type: FIBERNET
    price: "59.99"
    quota: 500
    active: true
  - id: 2
    name: Basic Monthly
    type: COPPER
    price: "19.99"
    quota: 100
    active: true

ui:
  title: Subscription Manager
  log_lines: 6
  default_type: FIBERNET
`

// SeedPlan declares one catalogue entry inside .planboard/config.yaml.
type SeedPlan struct {
	ID     int64  `yaml:"id,omitempty"`
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Price  string `yaml:"price"`
	Quota  int64  `yaml:"quota"`
	Active *bool  `yaml:"active,omitempty"`
}

// UIConfig captures console preferences.
type UIConfig struct {
	Title       string `yaml:"title"`
	LogLines    *int   `yaml:"log_lines,omitempty"`
	DefaultType string `yaml:"default_type"`
}

// ProjectConfig models .planboard/config.yaml.
type ProjectConfig struct {
	Version int        `yaml:"version"`
	Seed    []SeedPlan `yaml:"seed"`
	UI      UIConfig   `yaml:"ui"`
}

// Config holds the runtime configuration for planboard.
type Config struct {
	// ProjectDir is the directory planboard was started from
	ProjectDir string

	// StateDir is ProjectDir/.planboard
	StateDir string

	Project ProjectConfig
}

// InitDir creates the .planboard directory structure in the given project
// directory and writes the default config.yaml when none exists.
//
// Structure created:
// .planboard/
// ├── config.yaml
// └── logs/
func InitDir(projectDir string) error {
	root := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(filepath.Join(root, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure %s: %w", root, err)
	}
	return ensureProjectConfig(filepath.Join(root, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		StateDir:   filepath.Join(projectDir, Dir),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateDir, "logs")
}

// LogPath returns the file the console logbook appends to.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "planboard.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateDir, "config.yaml")
}

// Title is the heading shown above the console.
func (c *Config) Title() string {
	return c.Project.UI.Title
}

// LogLines is how many logbook lines the console panel shows. Zero hides
// the panel.
func (c *Config) LogLines() int {
	if c.Project.UI.LogLines == nil {
		return defaultLogLines
	}
	return *c.Project.UI.LogLines
}

// DefaultType is the type preselected in the add form.
func (c *Config) DefaultType() plan.Type {
	t, err := plan.ParseType(c.Project.UI.DefaultType)
	if err != nil {
		return plan.DefaultType
	}
	return t
}

// SeedPlans converts the configured seed into catalogue records.
func (c *Config) SeedPlans() ([]plan.Plan, error) {
	out := make([]plan.Plan, 0, len(c.Project.Seed))
	for i, s := range c.Project.Seed {
		p, err := s.toPlan()
		if err != nil {
			return nil, fmt.Errorf("config: seed[%d]: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnv() {
	raw := strings.TrimSpace(os.Getenv(LogLinesEnv))
	if raw == "" {
		return
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		n = min(n, maxLogLines)
		c.Project.UI.LogLines = &n
	}
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.UI.Title) == "" {
		pc.UI.Title = defaultTitle
	}
	if pc.UI.LogLines == nil {
		n := defaultLogLines
		pc.UI.LogLines = &n
	}
	if strings.TrimSpace(pc.UI.DefaultType) == "" {
		pc.UI.DefaultType = string(plan.DefaultType)
	}
}

func (pc *ProjectConfig) normalize() {
	pc.UI.Title = strings.TrimSpace(pc.UI.Title)
	pc.UI.DefaultType = strings.ToUpper(strings.TrimSpace(pc.UI.DefaultType))
	if pc.UI.LogLines != nil && *pc.UI.LogLines > maxLogLines {
		n := maxLogLines
		pc.UI.LogLines = &n
	}
	for i := range pc.Seed {
		pc.Seed[i].normalize()
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.UI.LogLines != nil && *pc.UI.LogLines < 0 {
		return fmt.Errorf("ui.log_lines must be >= 0")
	}
	if _, err := plan.ParseType(pc.UI.DefaultType); err != nil {
		return fmt.Errorf("ui.default_type: %w", err)
	}
	seen := map[int64]struct{}{}
	for i := range pc.Seed {
		if err := pc.Seed[i].validate(); err != nil {
			return fmt.Errorf("seed[%d]: %w", i, err)
		}
		id := pc.Seed[i].ID
		if id == 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("seed[%d]: duplicate id %d", i, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (s *SeedPlan) normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Type = strings.ToUpper(strings.TrimSpace(s.Type))
	if s.Type == "" {
		s.Type = string(plan.DefaultType)
	}
	s.Price = strings.TrimSpace(s.Price)
}

func (s SeedPlan) validate() error {
	if s.ID < 0 {
		return fmt.Errorf("id must be >= 0")
	}
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	_, err := s.toPlan()
	return err
}

func (s SeedPlan) toPlan() (plan.Plan, error) {
	kind, err := plan.ParseType(s.Type)
	if err != nil {
		return plan.Plan{}, err
	}
	price := decimal.Zero
	if s.Price != "" {
		price, err = decimal.NewFromString(s.Price)
		if err != nil {
			return plan.Plan{}, fmt.Errorf("price %q: %w", s.Price, err)
		}
	}
	if err := plan.CheckPrice(price); err != nil {
		return plan.Plan{}, err
	}
	if s.Quota < 0 {
		return plan.Plan{}, fmt.Errorf("quota must be >= 0")
	}
	active := true
	if s.Active != nil {
		active = *s.Active
	}
	return plan.Plan{
		ID:     s.ID,
		Name:   s.Name,
		Type:   kind,
		Price:  price,
		Quota:  s.Quota,
		Active: active,
	}, nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
