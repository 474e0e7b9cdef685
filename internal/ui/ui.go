package ui

import (
	"io"
	"os"
	"regexp"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/cli"
)

const ansiEscapeStr = "[\u001B\u009B][[\\]()#;?]*(?:(?:(?:[a-zA-Z\\d]*(?:;[a-zA-Z\\d]*)*)?\u0007)|(?:(?:\\d{1,4}(?:;\\d{0,4})*)?[\\dA-PRZcf-ntqry=><~]))"

// IsTTY is true when stdout appears to be a tty
var IsTTY = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// IsCI is true when we appear to be running in a non-interactive context.
var IsCI = !IsTTY || os.Getenv("CI") != "" || os.Getenv("BUILD_NUMBER") != ""

var gray = color.New(color.Faint)
var bold = color.New(color.Bold)

// The prefixes are rendered again whenever the color mode changes.
var (
	ERROR_PREFIX   string
	WARNING_PREFIX string
	SUCCESS_PREFIX string
)

func init() {
	renderPrefixes()
}

func renderPrefixes() {
	ERROR_PREFIX = color.New(color.Bold, color.FgRed, color.ReverseVideo).Sprint(" ERROR ")
	WARNING_PREFIX = color.New(color.Bold, color.FgYellow, color.ReverseVideo).Sprint(" WARNING ")
	SUCCESS_PREFIX = color.New(color.Bold, color.FgGreen, color.ReverseVideo).Sprint(" SUCCESS ")
}

var ansiRegex = regexp.MustCompile(ansiEscapeStr)

// Dim prints out dimmed text
func Dim(str string) string {
	return gray.Sprint(str)
}

func Bold(str string) string {
	return bold.Sprint(str)
}

// StripAnsi removes terminal escape sequences from str
func StripAnsi(str string) string {
	return ansiRegex.ReplaceAllString(str, "")
}

type stripAnsiWriter struct {
	wrappedWriter io.Writer
}

func (into *stripAnsiWriter) Write(p []byte) (int, error) {
	n, err := into.wrappedWriter.Write(ansiRegex.ReplaceAll(p, []byte{}))
	if err != nil {
		return n, err
	}
	// Write must return a non-nil error if it returns n < len(p), so report
	// the whole input as written.
	return len(p), nil
}

// ColorMode says whether output should carry color codes
type ColorMode int

const (
	ColorModeUndefined ColorMode = iota + 1
	ColorModeSuppressed
	ColorModeForced
)

// GetColorModeFromEnv reads FORCE_COLOR the way the node ecosystem does:
// "0"/"false" disables color, "1"-"3"/"true" forces it.
func GetColorModeFromEnv() ColorMode {
	switch forceColor := os.Getenv("FORCE_COLOR"); {
	case forceColor == "false" || forceColor == "0":
		return ColorModeSuppressed
	case forceColor == "true" || forceColor == "1" || forceColor == "2" || forceColor == "3":
		return ColorModeForced
	default:
		return ColorModeUndefined
	}
}

func applyColorMode(colorMode ColorMode) ColorMode {
	switch colorMode {
	case ColorModeForced:
		color.NoColor = false
	case ColorModeSuppressed:
		color.NoColor = true
	}
	// Otherwise color.NoColor keeps its default, based on the tty and NO_COLOR.
	renderPrefixes()
	if color.NoColor {
		return ColorModeSuppressed
	}
	return ColorModeForced
}

// Default returns the default colored ui. Without FORCE_COLOR, CI logs get
// no color codes.
func Default() *cli.ColoredUi {
	return BuildColoredUi(colorModeFor(GetColorModeFromEnv(), IsCI), os.Stdout, os.Stderr)
}

func colorModeFor(colorMode ColorMode, ci bool) ColorMode {
	if colorMode == ColorModeUndefined && ci {
		return ColorModeSuppressed
	}
	return colorMode
}

// BuildColoredUi returns a ui writing to out and errOut, with color codes
// stripped when colorMode resolves to suppressed.
func BuildColoredUi(colorMode ColorMode, out io.Writer, errOut io.Writer) *cli.ColoredUi {
	colorMode = applyColorMode(colorMode)

	if colorMode == ColorModeSuppressed {
		out = &stripAnsiWriter{wrappedWriter: out}
		errOut = &stripAnsiWriter{wrappedWriter: errOut}
	}

	return &cli.ColoredUi{
		Ui: &cli.BasicUi{
			Reader:      os.Stdin,
			Writer:      out,
			ErrorWriter: errOut,
		},
		OutputColor: cli.UiColorNone,
		InfoColor:   cli.UiColorNone,
		WarnColor:   cli.UiColor{Code: int(color.FgYellow), Bold: false},
		ErrorColor:  cli.UiColorRed,
	}
}
