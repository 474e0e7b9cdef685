package fs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPackageJSON(t *testing.T) {
	dir := AbsolutePath(t.TempDir())
	path := dir.Join("package.json")
	require.NoError(t, os.WriteFile(path.ToString(), []byte(`{
  "name": "frontend",
  "version": "0.1.0",
  "private": true,
  "homepage": ".",
  "dependencies": {"react": "^18.2.0"},
  "scripts": {
    "start": "react-scripts start",
    "build": "react-scripts build",
    "test": ""
  }
}`), 0644))

	pkg, err := ReadPackageJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "frontend", pkg.Name)
	assert.True(t, pkg.Private)
	assert.Equal(t, path.ToString(), pkg.PackageJSONPath)
	assert.True(t, pkg.HasScript("build"))
	assert.False(t, pkg.HasScript("test"), "empty scripts do not count")
	assert.NoError(t, pkg.RequireScript("build"))
	assert.EqualError(t, pkg.RequireScript("lint"), path.ToString()+`: no "lint" script defined`)
}

func TestReadPackageJSONErrors(t *testing.T) {
	dir := AbsolutePath(t.TempDir())

	_, err := ReadPackageJSON(dir.Join("package.json"))
	assert.Error(t, err)

	bad := dir.Join("bad.json")
	require.NoError(t, os.WriteFile(bad.ToString(), []byte(`{"name": `), 0644))
	_, err = ReadPackageJSON(bad)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}
