package backends

import (
	"fmt"
	"sort"
	"strings"

	"frontbuild/internal/api"
	"frontbuild/internal/backends/nodejs"
	"frontbuild/internal/fs"

	mapset "github.com/deckarep/golang-set"
	"github.com/hashicorp/go-hclog"
)

// backends is in precedence order, used when more than one lockfile is present.
var backends = []api.LanguageBackend{
	nodejs.NodejsYarnBackend,
	nodejs.NodejsPnpmBackend,
	nodejs.NodejsNpmBackend,
}

// Default is used when nothing in the project points at a package manager.
var Default = nodejs.NodejsNpmBackend

// GetBackendByName returns the backend whose command or name is name.
func GetBackendByName(name string) (*api.LanguageBackend, error) {
	for _, b := range backends {
		if b.Command == name || b.Name == name {
			b := b
			return &b, nil
		}
	}
	var known []string
	for _, b := range backends {
		known = append(known, b.Command)
	}
	return nil, fmt.Errorf("unknown package manager %q, expected one of %v", name, strings.Join(known, ", "))
}

// GetBackend picks the package manager for the project in dir. An explicit
// name wins, then the "packageManager" field of package.json, then whichever
// lockfile is present. With no hints at all it falls back to npm.
func GetBackend(dir fs.AbsolutePath, name string, pkg *fs.PackageJSON, logger hclog.Logger) (*api.LanguageBackend, error) {
	if name != "" {
		return GetBackendByName(name)
	}

	if pkg != nil && pkg.PackageManager != "" {
		// corepack style: "pnpm@8.6.0"
		pmName := strings.SplitN(pkg.PackageManager, "@", 2)[0]
		b, err := GetBackendByName(pmName)
		if err != nil {
			return nil, fmt.Errorf("%v: packageManager: %w", pkg.PackageJSONPath, err)
		}
		return b, nil
	}

	found := mapset.NewSet()
	var first *api.LanguageBackend
	for _, b := range backends {
		if dir.Join(b.Lockfile).FileExists() {
			found.Add(b.Lockfile)
			if first == nil {
				b := b
				first = &b
			}
		}
	}

	switch found.Cardinality() {
	case 0:
		logger.Debug("no lockfile found, defaulting", "backend", Default.Name)
		b := Default
		return &b, nil
	case 1:
	default:
		lockfiles := make([]string, 0, found.Cardinality())
		for _, l := range found.ToSlice() {
			lockfiles = append(lockfiles, l.(string))
		}
		sort.Strings(lockfiles)
		logger.Warn("multiple lockfiles found", "lockfiles", lockfiles, "using", first.Lockfile)
	}
	logger.Debug("detected package manager", "backend", first.Name)
	return first, nil
}
