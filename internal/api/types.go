package api

// LanguageBackend is an abstraction across the package managers that can
// install and build a frontend project
type LanguageBackend struct {
	// Name is the name of the language backend
	Name string

	// Command is the executable used to invoke the package manager, e.g. "npm".
	Command string

	// The filename of the lockfile, e.g. "yarn.lock".
	//
	// This field is mandatory.
	Lockfile string

	// Returns the arguments that install the project's dependencies
	GetInstallCommand func() []string

	// Returns the arguments that run a package.json script
	GetRunCommand func(script string) []string
}

// InstallArgs returns the full argv, command included, for installing dependencies.
func (b *LanguageBackend) InstallArgs() []string {
	return append([]string{b.Command}, b.GetInstallCommand()...)
}

// RunArgs returns the full argv, command included, for running script.
func (b *LanguageBackend) RunArgs(script string) []string {
	return append([]string{b.Command}, b.GetRunCommand(script)...)
}
