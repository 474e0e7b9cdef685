package fs

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// PackageJSON represents the parts of a NodeJS package.json we care about
type PackageJSON struct {
	Name            string            `json:"name,omitempty"`
	Version         string            `json:"version,omitempty"`
	Private         bool              `json:"private"`
	Homepage        string            `json:"homepage,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	PackageManager  string            `json:"packageManager,omitempty"`
	PackageJSONPath string            `json:"-"`
}

// HasScript reports whether the package defines a non-empty script named name.
func (p *PackageJSON) HasScript(name string) bool {
	return p.Scripts[name] != ""
}

// RequireScript returns an error if the package has no script named name.
func (p *PackageJSON) RequireScript(name string) error {
	if !p.HasScript(name) {
		return fmt.Errorf("%v: no %q script defined", p.PackageJSONPath, name)
	}
	return nil
}

// ReadPackageJSON returns a struct of package.json
func ReadPackageJSON(path AbsolutePath) (*PackageJSON, error) {
	b, err := path.ReadFile()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %v", path)
	}
	var pkg PackageJSON
	if err := json.Unmarshal(b, &pkg); err != nil {
		return nil, errors.Wrapf(err, "parsing %v", path)
	}
	pkg.PackageJSONPath = path.ToString()
	return &pkg, nil
}
