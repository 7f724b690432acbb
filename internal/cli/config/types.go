// Package config provides configuration management for the leaprel CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	FixturesDir  string   `koanf:"fixtures_dir"`
	Fixtures     []string `koanf:"fixtures"`
	Sample       bool     `koanf:"sample"`
	OutputFormat string   `koanf:"output"`
	Verbose      bool     `koanf:"verbose"`
	HistoryFile  string   `koanf:"history_file"`
	Prompt       string   `koanf:"prompt"`
	Watch        bool     `koanf:"watch"`
}

// Output formats.
const (
	OutputTable    = "table"
	OutputJSON     = "json"
	OutputCSV      = "csv"
	OutputMarkdown = "md"
)

// Default configuration values.
const (
	DefaultFixturesDir = "fixtures"
	DefaultOutput      = OutputTable
	DefaultHistoryFile = "~/.leaprel_history"
	DefaultPrompt      = "leaprel> "
)

// OutputFormats lists the accepted values of the output key.
func OutputFormats() []string {
	return []string{OutputTable, OutputJSON, OutputCSV, OutputMarkdown}
}
