package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/planboard/internal/plan"
)

func writeConfig(t *testing.T, projectDir, body string) {
	t.Helper()
	dir := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(strings.TrimSpace(body)), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if c.Title() != defaultTitle {
		t.Fatalf("expected default title %q, got %q", defaultTitle, c.Title())
	}
	if c.LogLines() != defaultLogLines {
		t.Fatalf("expected %d log lines, got %d", defaultLogLines, c.LogLines())
	}
	if c.DefaultType() != plan.TypeFibernet {
		t.Fatalf("expected FIBERNET default type, got %s", c.DefaultType())
	}
	seed, err := c.SeedPlans()
	if err != nil || len(seed) != 0 {
		t.Fatalf("expected empty seed, got %v (%v)", seed, err)
	}
}

func TestInitDirWritesLoadableDefaults(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("init dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(projectDir, Dir, "logs")); err != nil {
		t.Fatalf("logs dir missing: %v", err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	seed, err := c.SeedPlans()
	if err != nil {
		t.Fatalf("seed plans: %v", err)
	}
	if len(seed) != 2 {
		t.Fatalf("expected 2 seed plans, got %d", len(seed))
	}
	if seed[0].Name != "Pro Annual" || seed[0].PriceLabel() != "59.99" || seed[0].Quota != 500 || !seed[0].Active {
		t.Fatalf("unexpected first seed plan: %+v", seed[0])
	}
	if seed[1].Type != plan.TypeCopper || seed[1].ID != 2 {
		t.Fatalf("unexpected second seed plan: %+v", seed[1])
	}
}

func TestInitDirKeepsExistingConfig(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, `
version: 1
ui:
  title: Custom
`)
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("init dir: %v", err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Title() != "Custom" {
		t.Fatalf("existing config overwritten, title %q", c.Title())
	}
}

func TestNewConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, `
version: 1
seed:
  - name: "  Lite "
    type: copper
    price: "5"
    quota: 10
    active: false
  - id: 9
    name: Max
    price: "120.5"
    quota: 2000
ui:
  title: Ops Console
  log_lines: 3
  default_type: other
`)
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Title() != "Ops Console" || c.LogLines() != 3 || c.DefaultType() != plan.TypeOther {
		t.Fatalf("ui config not applied: %+v", c.Project.UI)
	}
	seed, err := c.SeedPlans()
	if err != nil {
		t.Fatalf("seed plans: %v", err)
	}
	if seed[0].Name != "Lite" || seed[0].Type != plan.TypeCopper || seed[0].Active {
		t.Fatalf("first seed not normalized: %+v", seed[0])
	}
	if seed[1].Type != plan.DefaultType || !seed[1].Active || seed[1].PriceLabel() != "120.50" {
		t.Fatalf("second seed defaults not applied: %+v", seed[1])
	}
}

func TestNewConfigValidation(t *testing.T) {
	bodies := map[string]string{
		"unknown type": `
seed:
  - name: Sat
    type: SATELLITE
`,
		"bad price": `
seed:
  - name: A
    price: cheap
`,
		"huge price": `
seed:
  - name: A
    price: "1e99999999"
`,
		"negative quota": `
seed:
  - name: A
    quota: -1
`,
		"duplicate id": `
seed:
  - id: 1
    name: A
  - id: 1
    name: B
`,
		"missing name": `
seed:
  - price: "1"
`,
		"bad default type": `
ui:
  default_type: radio
`,
	}
	for name, body := range bodies {
		projectDir := t.TempDir()
		writeConfig(t, projectDir, body)
		if _, err := NewConfig(projectDir); err == nil {
			t.Fatalf("%s: expected validation error but got none", name)
		}
	}
}

func TestLogLinesEnvOverride(t *testing.T) {
	projectDir := t.TempDir()
	t.Setenv(LogLinesEnv, "12")
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.LogLines() != 12 {
		t.Fatalf("expected env override to 12, got %d", c.LogLines())
	}
	t.Setenv(LogLinesEnv, "not-a-number")
	c, err = NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.LogLines() != defaultLogLines {
		t.Fatalf("invalid env value should be ignored, got %d", c.LogLines())
	}
}

func TestZeroLogLinesHidesPanel(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, `
ui:
  log_lines: 0
`)
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.LogLines() != 0 {
		t.Fatalf("explicit zero should be kept, got %d", c.LogLines())
	}

	t.Setenv(LogLinesEnv, "0")
	c, err = NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.LogLines() != 0 {
		t.Fatalf("env zero should hide the panel, got %d", c.LogLines())
	}
}
