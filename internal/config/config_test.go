package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigWithDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Failed to load config with defaults: %v", err)
	}

	if cfg.Keyword.Message != "on sale" {
		t.Errorf("Expected default message, got %q", cfg.Keyword.Message)
	}
	if cfg.Chunk.Size != 3 {
		t.Errorf("Expected default chunk size 3, got %d", cfg.Chunk.Size)
	}
	if cfg.Export.Timeout != 2*time.Minute {
		t.Errorf("Expected default timeout 2m, got %s", cfg.Export.Timeout)
	}
	if !filepath.IsAbs(cfg.Output.Dir) {
		t.Errorf("Expected absolute output dir, got %s", cfg.Output.Dir)
	}
	if len(cfg.Input.Encoding) == 0 {
		t.Error("Expected at least one encoding hint")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}

	cfg.Print()
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
input:
  files: ["ex1.xlsx", "ex2.xlsx"]
keyword:
  value: "抹茶"
  message: "お買い得！"
chunk:
  size: 5
export:
  timeout: 30s
report:
  formats: ["word"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Input.Files) != 2 || cfg.Input.Files[1] != "ex2.xlsx" {
		t.Errorf("Unexpected input files: %v", cfg.Input.Files)
	}
	if cfg.Keyword.Value != "抹茶" || cfg.Keyword.Message != "お買い得！" {
		t.Errorf("Unexpected keyword config: %+v", cfg.Keyword)
	}
	if cfg.Chunk.Size != 5 {
		t.Errorf("Expected chunk size 5, got %d", cfg.Chunk.Size)
	}
	if cfg.Export.Timeout != 30*time.Second {
		t.Errorf("Expected timeout 30s, got %s", cfg.Export.Timeout)
	}
	if cfg.Chunk.RowPrefix != "split_data" {
		t.Errorf("Unset keys should keep defaults, got %q", cfg.Chunk.RowPrefix)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("XLKEYWORD_KEYWORD_VALUE", "matcha")
	t.Setenv("XLKEYWORD_CHUNK_SIZE", "4")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Keyword.Value != "matcha" {
		t.Errorf("Expected keyword from env, got %q", cfg.Keyword.Value)
	}
	if cfg.Chunk.Size != 4 {
		t.Errorf("Expected chunk size from env, got %d", cfg.Chunk.Size)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("input: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestGetOutputPath(t *testing.T) {
	cfg := &Config{Output: OutputConfig{Dir: "/tmp/output", File: "exoutput.xlsx"}}

	expected := filepath.Join("/tmp/output", "exoutput.xlsx")
	if result := cfg.GetOutputPath(); result != expected {
		t.Errorf("GetOutputPath() = %s, expected %s", result, expected)
	}

	abs := filepath.Join(t.TempDir(), "elsewhere.xlsx")
	cfg.Output.File = abs
	if result := cfg.GetOutputPath(); result != abs {
		t.Errorf("GetOutputPath() = %s, expected %s", result, abs)
	}
}

func TestGetMergePath(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := filepath.Join(cfg.Output.Dir, "merged.xlsx")
	if result := cfg.GetMergePath(); result != expected {
		t.Errorf("GetMergePath() = %s, expected %s", result, expected)
	}
}

func TestGetLogPath(t *testing.T) {
	cfg := &Config{Output: OutputConfig{Dir: "/tmp/output"}, Log: LogConfig{File: "run.log"}}
	if got := cfg.GetLogPath(); got != filepath.Join("/tmp/output", "run.log") {
		t.Errorf("GetLogPath() = %s", got)
	}

	cfg.Log.File = ""
	if got := cfg.GetLogPath(); got != "" {
		t.Errorf("GetLogPath() = %s, expected empty", got)
	}
}

func TestResolveInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.xlsx", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := &Config{Input: InputConfig{Files: []string{
		filepath.Join(dir, "first.xlsx"),
		filepath.Join(dir, "*.xlsx"),
		filepath.Join(dir, "a.xlsx"),
	}}}

	files, err := cfg.ResolveInputs()
	if err != nil {
		t.Fatalf("ResolveInputs failed: %v", err)
	}

	expected := []string{
		filepath.Join(dir, "first.xlsx"),
		filepath.Join(dir, "a.xlsx"),
		filepath.Join(dir, "b.xlsx"),
	}
	if len(files) != len(expected) {
		t.Fatalf("ResolveInputs() = %v, expected %v", files, expected)
	}
	for i := range expected {
		if files[i] != expected[i] {
			t.Errorf("files[%d] = %s, expected %s", i, files[i], expected[i])
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Input:  InputConfig{Encoding: []string{"utf-8"}},
			Output: OutputConfig{File: "out.xlsx", MergeFile: "merged.xlsx"},
			Chunk:  ChunkConfig{Size: 3},
			Export: ExportConfig{Timeout: time.Minute},
			Report: ReportConfig{Formats: []string{"word", "Excel"}},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		shouldErr bool
	}{
		{"Valid config", func(*Config) {}, false},
		{"Zero chunk size", func(c *Config) { c.Chunk.Size = 0 }, true},
		{"Empty encoding list", func(c *Config) { c.Input.Encoding = nil }, true},
		{"Empty output file", func(c *Config) { c.Output.File = "" }, true},
		{"Empty merge file", func(c *Config) { c.Output.MergeFile = "" }, true},
		{"Zero timeout", func(c *Config) { c.Export.Timeout = 0 }, true},
		{"Unknown report format", func(c *Config) { c.Report.Formats = []string{"pdf"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.shouldErr && err == nil {
				t.Error("Expected error but got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}
