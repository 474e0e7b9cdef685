package config

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"frontbuild/internal/fs"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

const (
	// EnvPrefix is the prefix for every environment variable frontbuild reads
	EnvPrefix = "FRONTBUILD"
	// EnvLogLevel is the environment log level
	EnvLogLevel = "FRONTBUILD_LOG_LEVEL"
)

// envSpec is what envconfig fills in. The defaults place the frontend and its
// build output the way the repository lays them out. BuildPath and PublicURL carry an
// envconfig tag so that the unprefixed names the bundler itself understands
// are honoured too.
type envSpec struct {
	Root           string        `split_words:"true"`
	FrontendDir    string        `split_words:"true" default:"FullStackApp/frontend"`
	OutputDir      string        `split_words:"true" default:"build"`
	TargetDir      string        `split_words:"true" default:"build"`
	PackageManager string        `split_words:"true"`
	SkipInstall    bool          `split_words:"true"`
	Profile        bool
	KillTimeout    time.Duration `split_words:"true" default:"10s"`
	BuildPath      string        `envconfig:"BUILD_PATH"`
	PublicURL      string        `envconfig:"PUBLIC_URL"`
}

// Config is a struct that contains user inputs and our logger
type Config struct {
	Logger hclog.Logger

	// Root everything else is resolved against
	Root fs.AbsolutePath
	// Directory holding the frontend's package.json
	FrontendDir fs.AbsolutePath
	// Where the bundler writes its output; the copy source
	OutputDir fs.AbsolutePath
	// Where the output is mirrored to; the copy destination
	TargetDir fs.AbsolutePath

	// Package manager to force, empty to detect
	PackageManager string
	// Skip the dependency install step
	SkipInstall bool
	// Write a chrome trace of the build steps
	Profile bool
	// How long an interrupted child gets before it is killed
	KillTimeout time.Duration

	// BuildEnv holds KEY=VALUE pairs added to the bundler's environment
	BuildEnv []string
}

// ParseAndValidate reads FRONTBUILD_* env vars and the verbosity flags out of
// args, and returns the resulting config along with the args that remain.
// Paths that are relative resolve against the root, which defaults to the
// current working directory.
func ParseAndValidate(args []string) (*Config, []string, error) {
	var spec envSpec
	if err := envconfig.Process(EnvPrefix, &spec); err != nil {
		return nil, nil, fmt.Errorf("invalid environment variable: %w", err)
	}

	// Determine our log level if we have any. First override we check if env var
	level := hclog.NoLevel
	if v := os.Getenv(EnvLogLevel); v != "" {
		level = hclog.LevelFromString(v)
		if level == hclog.NoLevel {
			return nil, nil, fmt.Errorf("%s value %q is not a valid log level", EnvLogLevel, v)
		}
	}

	// Process arguments looking for `-v` flags to control the log level.
	// This overrides whatever the env var set.
	var outArgs []string
	for _, arg := range args {
		switch {
		case arg == "-v":
			if level == hclog.NoLevel || level > hclog.Info {
				level = hclog.Info
			}
		case arg == "-vv":
			if level == hclog.NoLevel || level > hclog.Debug {
				level = hclog.Debug
			}
		case arg == "-vvv":
			if level == hclog.NoLevel || level > hclog.Trace {
				level = hclog.Trace
			}
		default:
			outArgs = append(outArgs, arg)
		}
	}

	// Default output is nowhere unless we enable logging.
	var output io.Writer = ioutil.Discard
	color := hclog.ColorOff
	if level != hclog.NoLevel {
		output = os.Stderr
		color = hclog.AutoColor
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "frontbuild",
		Level:  level,
		Color:  color,
		Output: output,
	})

	c, err := fromSpec(&spec, logger)
	if err != nil {
		return nil, nil, err
	}
	return c, outArgs, nil
}

func fromSpec(spec *envSpec, logger hclog.Logger) (*Config, error) {
	if spec.KillTimeout <= 0 {
		return nil, errors.Errorf("FRONTBUILD_KILL_TIMEOUT must be positive, got %v", spec.KillTimeout)
	}
	root, err := resolveRoot(spec.Root)
	if err != nil {
		return nil, err
	}
	frontendDir, err := resolveUnder(root, spec.FrontendDir)
	if err != nil {
		return nil, err
	}
	targetDir, err := resolveUnder(root, spec.TargetDir)
	if err != nil {
		return nil, err
	}

	var buildEnv []string
	var outputDir fs.AbsolutePath
	if spec.BuildPath != "" {
		// The bundler resolves BUILD_PATH against its own directory, so we do
		// the same and hand it the absolute result.
		outputDir, err = resolveUnder(frontendDir, spec.BuildPath)
		if err != nil {
			return nil, err
		}
		buildEnv = append(buildEnv, "BUILD_PATH="+outputDir.ToString())
	} else {
		outputDir, err = resolveUnder(frontendDir, spec.OutputDir)
		if err != nil {
			return nil, err
		}
	}
	if spec.PublicURL != "" {
		buildEnv = append(buildEnv, "PUBLIC_URL="+spec.PublicURL)
	}

	c := &Config{
		Logger:         logger,
		Root:           root,
		FrontendDir:    frontendDir,
		OutputDir:      outputDir,
		TargetDir:      targetDir,
		PackageManager: spec.PackageManager,
		SkipInstall:    spec.SkipInstall,
		Profile:        spec.Profile,
		KillTimeout:    spec.KillTimeout,
		BuildEnv:       buildEnv,
	}
	logger.Debug("resolved paths", "root", root, "frontend", frontendDir, "output", outputDir, "target", targetDir)
	return c, nil
}

func resolveRoot(raw string) (fs.AbsolutePath, error) {
	if raw == "" {
		return fs.GetCwd()
	}
	expanded, err := homedir.Expand(raw)
	if err != nil {
		return "", errors.Wrapf(err, "expanding %v", raw)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %v", raw)
	}
	return fs.CheckedToAbsolutePath(abs)
}

func resolveUnder(base fs.AbsolutePath, raw string) (fs.AbsolutePath, error) {
	expanded, err := homedir.Expand(raw)
	if err != nil {
		return "", errors.Wrapf(err, "expanding %v", raw)
	}
	return fs.ResolvePath(base, expanded), nil
}
