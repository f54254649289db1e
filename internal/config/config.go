package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. XLKEYWORD_KEYWORD_VALUE
const EnvPrefix = "XLKEYWORD"

// Config represents the application configuration
type Config struct {
	Input   InputConfig   `mapstructure:"input"`
	Output  OutputConfig  `mapstructure:"output"`
	Keyword KeywordConfig `mapstructure:"keyword"`
	Chunk   ChunkConfig   `mapstructure:"chunk"`
	Export  ExportConfig  `mapstructure:"export"`
	Report  ReportConfig  `mapstructure:"report"`
	Log     LogConfig     `mapstructure:"log"`
}

// InputConfig holds the source workbooks
type InputConfig struct {
	Files    []string `mapstructure:"files"`    // Workbook paths or glob patterns, processed in order
	Encoding []string `mapstructure:"encoding"` // Encoding hints for assignment files (e.g., ["utf-8", "shift_jis"])
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir        string `mapstructure:"dir"`         // Output directory
	File       string `mapstructure:"file"`        // Extraction workbook name
	SheetTitle string `mapstructure:"sheet_title"` // Sheet title of the extraction workbook
	MergeFile  string `mapstructure:"merge_file"`  // Workbook written by the template merge
}

// KeywordConfig holds search settings
type KeywordConfig struct {
	Value   string `mapstructure:"value"`   // Substring to match, case-sensitive
	Message string `mapstructure:"message"` // Annotation written next to each match
}

// ChunkConfig holds splitter settings
type ChunkConfig struct {
	Size       int    `mapstructure:"size"`        // Rows or characters per chunk
	RowPrefix  string `mapstructure:"row_prefix"`  // File prefix of row chunks
	TextPrefix string `mapstructure:"text_prefix"` // File prefix of text chunks
}

// ExportConfig holds settings for the external office application
type ExportConfig struct {
	OfficeBinary string        `mapstructure:"office_binary"` // Executable run headless (e.g., "soffice")
	Timeout      time.Duration `mapstructure:"timeout"`       // Upper bound for one conversion
}

// ReportConfig holds run report settings
type ReportConfig struct {
	Formats  []string `mapstructure:"formats"`  // "word", "excel"; empty disables reports
	Template string   `mapstructure:"template"` // Optional custom .docx template
}

// LogConfig holds logging settings
type LogConfig struct {
	File    string `mapstructure:"file"`    // Log file name inside output.dir, or an absolute path
	Level   string `mapstructure:"level"`   // debug, info, warn, error
	Verbose bool   `mapstructure:"verbose"` // Shorthand for level=debug
}

// Load reads the configuration from a file, environment and defaults.
// If configPath is empty, it looks for "config.yaml" in the current directory.
// If the file doesn't exist, defaults are used.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			fmt.Println("Config file not found. Using defaults and environment.")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("input.files", []string{})
	v.SetDefault("input.encoding", []string{"utf-8", "shift_jis", "euc-jp"})

	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file", "exoutput.xlsx")
	v.SetDefault("output.sheet_title", "matches")
	v.SetDefault("output.merge_file", "merged.xlsx")

	v.SetDefault("keyword.value", "")
	v.SetDefault("keyword.message", "on sale")

	v.SetDefault("chunk.size", 3)
	v.SetDefault("chunk.row_prefix", "split_data")
	v.SetDefault("chunk.text_prefix", "text_chunks")

	v.SetDefault("export.office_binary", "soffice")
	v.SetDefault("export.timeout", 2*time.Minute)

	v.SetDefault("report.formats", []string{})
	v.SetDefault("report.template", "")

	v.SetDefault("log.file", "xlkeyword.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.verbose", false)
}

// normalizePaths converts relative directories to absolute paths
func (c *Config) normalizePaths() error {
	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput
	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// GetOutputPath returns the full path of the extraction workbook
func (c *Config) GetOutputPath() string {
	if filepath.IsAbs(c.Output.File) {
		return c.Output.File
	}
	return filepath.Join(c.Output.Dir, c.Output.File)
}

// GetMergePath returns the full path of the template merge workbook
func (c *Config) GetMergePath() string {
	if filepath.IsAbs(c.Output.MergeFile) {
		return c.Output.MergeFile
	}
	return filepath.Join(c.Output.Dir, c.Output.MergeFile)
}

// GetLogPath returns the full path of the log file, empty when logging to file is off
func (c *Config) GetLogPath() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.Output.Dir, c.Log.File)
}

// GetReportPath returns the report path for a run without extension
func (c *Config) GetReportPath(operation string) string {
	return filepath.Join(c.Output.Dir, "xlkeyword-"+operation+"-report")
}

// ResolveInputs expands glob patterns in input.files, keeping the configured order.
// Literal paths are kept even when missing so the operation reports the failure.
func (c *Config) ResolveInputs() ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range c.Input.Files {
		matches := []string{pattern}
		if hasMeta(pattern) {
			var err error
			matches, err = filepath.Glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
			}
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	return files, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Chunk.Size < 1 {
		return fmt.Errorf("chunk.size must be greater than zero, got %d", c.Chunk.Size)
	}

	if len(c.Input.Encoding) == 0 {
		return fmt.Errorf("input.encoding must contain at least one encoding")
	}

	if c.Output.File == "" {
		return fmt.Errorf("output.file cannot be empty")
	}

	if c.Output.MergeFile == "" {
		return fmt.Errorf("output.merge_file cannot be empty")
	}

	if c.Export.Timeout <= 0 {
		return fmt.Errorf("export.timeout must be positive")
	}

	for _, format := range c.Report.Formats {
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "word", "docx", "excel", "xlsx":
		default:
			return fmt.Errorf("unknown report format %q", format)
		}
	}

	return nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[`)
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== xlkeyword Configuration ===")
	fmt.Printf("Input Files:      %v\n", c.Input.Files)
	fmt.Printf("Encoding Hints:   %v\n", c.Input.Encoding)
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Output File:      %s\n", c.GetOutputPath())
	fmt.Printf("Keyword:          %q\n", c.Keyword.Value)
	fmt.Printf("Message:          %q\n", c.Keyword.Message)
	fmt.Printf("Chunk Size:       %d\n", c.Chunk.Size)
	fmt.Printf("Office Binary:    %s (timeout %s)\n", c.Export.OfficeBinary, c.Export.Timeout)
	fmt.Printf("Report Formats:   %v\n", c.Report.Formats)
	fmt.Println("===============================")
}
