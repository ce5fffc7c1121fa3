package config

import (
	"flag"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gol-canvas/internal/core"
	"gol-canvas/internal/sims/life"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Grid.Columns != 200 || cfg.Grid.Rows != 200 || cfg.Grid.CellSize != 10 {
		t.Fatalf("grid=%+v, want 200x200 at 10px", cfg.Grid)
	}
	if cfg.Policy() != life.EdgeClamp {
		t.Fatalf("policy=%v, want edge-clamp", cfg.Policy())
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gol.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadOverlaysOnlyPresentFields(t *testing.T) {
	path := writeFile(t, "grid:\n  columns: 64\nview:\n  max_scale: 8\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Grid.Columns != 64 {
		t.Fatalf("columns=%d, want 64", cfg.Grid.Columns)
	}
	if cfg.Grid.Rows != 200 {
		t.Fatalf("rows=%d, want default 200", cfg.Grid.Rows)
	}
	if cfg.View.MaxScale != 8 || cfg.View.MinScale != 0.5 {
		t.Fatalf("view=%+v, want max 8 and default min", cfg.View)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMergeKeepsExplicitFlags(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-cols", "32", "-neighbors", "wrap"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	path := writeFile(t, "grid:\n  columns: 64\n  rows: 48\n  neighbor_policy: bounded\n")
	if err := cfg.Merge(path, fs); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if cfg.Grid.Columns != 32 {
		t.Fatalf("columns=%d, want flag value 32", cfg.Grid.Columns)
	}
	if cfg.Grid.Rows != 48 {
		t.Fatalf("rows=%d, want file value 48", cfg.Grid.Rows)
	}
	if cfg.Policy() != life.Wrap {
		t.Fatalf("policy=%v, want wrap from flag", cfg.Policy())
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg, _ := Default()
	cfg.Grid.Columns = 0
	cfg.View.MaxScale = 0.1
	cfg.Sim.TickRate = 500
	cfg.Grid.NeighborPolicy = "torus"
	cfg.Render.Live = "white"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"grid.columns", "view.max_scale", "sim.tick_rate", "grid.neighbor_policy", "render.live"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidateSeedCells(t *testing.T) {
	cfg, _ := Default()
	cfg.Seed.Cells = [][2]int{{1, 1}, {200, 0}}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "seed.cells") {
		t.Fatalf("err=%v, want seed.cells complaint", err)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#000000", color.RGBA{A: 255}, true},
		{"#ff8000", color.RGBA{R: 255, G: 128, A: 255}, true},
		{"10203040", color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, true},
		{"#fff", color.RGBA{}, false},
		{"#gg0000", color.RGBA{}, false},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("ParseColor(%q) err=%v, want ok=%v", tc.in, err, tc.ok)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseColor(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewGridAppliesPatternAndCells(t *testing.T) {
	cfg, _ := Default()
	cfg.Grid.Columns, cfg.Grid.Rows = 5, 5
	cfg.Seed.Pattern = "blank"
	cfg.Seed.Cells = [][2]int{{0, 0}, {4, 3}}
	g, err := cfg.NewGrid()
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	want := []core.Cell{{Col: 0, Row: 0}, {Col: 4, Row: 3}}
	got := g.LiveCells()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("live=%v, want %v", got, want)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, _ := Default()
	cfg.Grid.Columns = 77
	cfg.Seed.Cells = [][2]int{{3, 4}}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if back.Grid.Columns != 77 || len(back.Seed.Cells) != 1 || back.Seed.Cells[0] != [2]int{3, 4} {
		t.Fatalf("reloaded=%+v", back)
	}
}
