// Package commands implements the ctf CLI commands.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/teamforge-io/ctf/pkg/ctf"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
	OutputFormatTable = "table"

	defaultYAMLIndent = 2
)

// Common static errors used throughout the commands package.
var (
	ErrServerRequired         = errors.New("no server configured (use --server or 'ctf login')")
	ErrServerNotFound         = errors.New("server not found in config")
	ErrProjectRequired        = errors.New("project is required (--project)")
	ErrTrackerRequired        = errors.New("tracker is required (--tracker)")
	ErrPackageRequired        = errors.New("package is required (--package)")
	ErrReleaseRequired        = errors.New("release is required (--release)")
	ErrFolderRequired         = errors.New("folder is required (--folder or --path)")
	ErrTitleRequired          = errors.New("title is required")
	ErrFileRequired           = errors.New("file is required (--file)")
	ErrSubjectRequired        = errors.New("subject is required (--subject)")
	ErrStatusRequired         = errors.New("status is required (--status)")
	ErrNothingToUpdate        = errors.New("nothing to update: no fields given")
	ErrUsernameRequired       = errors.New("username is required")
	ErrPasswordNotInteractive = errors.New("password prompt requires an interactive terminal")
)

// StandardJSONRenderer writes data to stdout as indented JSON.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data to stdout as YAML.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultYAMLIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// renderStructured handles the json and yaml output formats. The returned
// bool reports whether the data was rendered; false means the caller should
// fall through to its table view.
func renderStructured[T any](data T) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return true, StandardJSONRenderer(data)
	case OutputFormatYAML:
		return true, StandardYAMLRenderer(data)
	default:
		return false, nil
	}
}

func orNA(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}

func verboseLogger() ctf.Logger {
	if !viper.GetBool("verbose") {
		return nil
	}

	return stderrLogger{}
}

// stderrLogger writes structured key/value lines to stderr for --verbose.
type stderrLogger struct{}

func (stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s", level, msg)

	for key, value := range fields {
		fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	fmt.Fprintln(os.Stderr)
}

func (l stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }
