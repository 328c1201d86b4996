// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// InputConfig holds settings for locating and reading report PDFs.
type InputConfig struct {
	// Paths lists input file globs (default "./reports/*.pdf").
	Paths []string `json:"paths" yaml:"paths" mapstructure:"paths"`

	// OCRFallback enables OCR when a page has no selectable text.
	OCRFallback bool `json:"ocr_fallback" yaml:"ocr_fallback" mapstructure:"ocr_fallback"`

	// OCRLang is the tesseract language code (default "eng").
	OCRLang string `json:"ocr_lang" yaml:"ocr_lang" mapstructure:"ocr_lang"`
}

// ParsingConfig holds the extraction engine's configuration surface.
type ParsingConfig struct {
	// NameRegexStrict selects strict (upper-case only) name matching.
	// Tolerant mixed-case variants are tried only when this is false.
	NameRegexStrict bool `json:"name_regex_strict" yaml:"name_regex_strict" mapstructure:"name_regex_strict"`

	// AllowTwoLineIDDate accepts identifier and book-in date split across
	// two consecutive lines.
	AllowTwoLineIDDate bool `json:"allow_two_line_id_date" yaml:"allow_two_line_id_date" mapstructure:"allow_two_line_id_date"`

	// StallCeiling is the number of consecutive no-progress scan iterations
	// tolerated before the progress guard forces the position forward.
	// Zero means the default (500).
	StallCeiling int `json:"stall_ceiling" yaml:"stall_ceiling" mapstructure:"stall_ceiling"`

	// HeaderPatterns are regular expressions identifying header/footer lines
	// to drop during preprocessing.
	HeaderPatterns []string `json:"header_patterns" yaml:"header_patterns" mapstructure:"header_patterns"`
}

// OutputConfig holds writer destinations. Empty paths disable a format.
type OutputConfig struct {
	JSONPath   string `json:"json_path" yaml:"json_path" mapstructure:"json_path"`
	CSVPath    string `json:"csv_path" yaml:"csv_path" mapstructure:"csv_path"`
	NDJSONPath string `json:"ndjson_path" yaml:"ndjson_path" mapstructure:"ndjson_path"`
	XLSXPath   string `json:"xlsx_path" yaml:"xlsx_path" mapstructure:"xlsx_path"`

	// PrettyJSON indents the JSON output.
	PrettyJSON bool `json:"pretty_json" yaml:"pretty_json" mapstructure:"pretty_json"`

	// RedactAddress replaces address lines with a redaction marker.
	RedactAddress bool `json:"redact_address" yaml:"redact_address" mapstructure:"redact_address"`

	// HashIdentifier replaces identifiers with their SHA-256 hex digest.
	HashIdentifier bool `json:"hash_identifier" yaml:"hash_identifier" mapstructure:"hash_identifier"`
}

// StoreConfig holds settings for the local SQLite record store.
type StoreConfig struct {
	// Enabled turns on ingestion into the store after each run.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default "./arrestx.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// WebConfig holds settings for daily report retrieval.
type WebConfig struct {
	// URL is the daily report endpoint.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// SkipIfExisting skips processing when the fetched report's date matches
	// a report already on disk.
	SkipIfExisting bool `json:"skip_if_existing" yaml:"skip_if_existing" mapstructure:"skip_if_existing"`

	// DownloadDir is where fetched reports are saved (default "./reports").
	DownloadDir string `json:"download_dir" yaml:"download_dir" mapstructure:"download_dir"`
}

// Config groups all stage configurations.
type Config struct {
	Input   InputConfig   `json:"input" yaml:"input" mapstructure:"input"`
	Parsing ParsingConfig `json:"parsing" yaml:"parsing" mapstructure:"parsing"`
	Output  OutputConfig  `json:"output" yaml:"output" mapstructure:"output"`
	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
	Web     WebConfig     `json:"web" yaml:"web" mapstructure:"web"`
}

// DefaultConfig returns the configuration used when no file or flags
// override it. Defaults mirror the report variants seen in production.
func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			Paths:   []string{"./reports/*.pdf"},
			OCRLang: "eng",
		},
		Parsing: ParsingConfig{
			NameRegexStrict:    true,
			AllowTwoLineIDDate: true,
			StallCeiling:       500,
			HeaderPatterns:     DefaultHeaderPatterns(),
		},
		Output: OutputConfig{
			JSONPath:   "./out/arrests.json",
			CSVPath:    "./out/arrests.csv",
			PrettyJSON: true,
		},
		Store: StoreConfig{
			Path: "./arrestx.db",
		},
		Web: WebConfig{
			Timeout:        60 * time.Second,
			UserAgent:      "arrestx/0.1",
			SkipIfExisting: true,
			DownloadDir:    "./reports",
		},
	}
}

// DefaultHeaderPatterns lists the header/footer shapes of the known report
// variants. Preprocessing drops any line matching one of these.
func DefaultHeaderPatterns() []string {
	return []string{
		`^Daily Booked In Report$`,
		`^Inmates Booked In During the Past 24 Hours\b`,
		`^Inmate Name\s+Identifier\s+CID\s+Book In Date\s+Booking No\.\s+Description$`,
		`^Report Date:`,
		`^Page:?\s*\d+\s+of\s+\d+$`,
		`^[-\s]{5,}$`,
	}
}
