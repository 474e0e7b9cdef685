package nodejs

import "frontbuild/internal/api"

var NodejsYarnBackend = api.LanguageBackend{
	Name:     "nodejs-yarn",
	Command:  "yarn",
	Lockfile: "yarn.lock",
	GetInstallCommand: func() []string {
		return []string{"install"}
	},
	GetRunCommand: func(script string) []string {
		return []string{"run", script}
	},
}

var NodejsPnpmBackend = api.LanguageBackend{
	Name:     "nodejs-pnpm",
	Command:  "pnpm",
	Lockfile: "pnpm-lock.yaml",
	GetInstallCommand: func() []string {
		return []string{"install"}
	},
	GetRunCommand: func(script string) []string {
		return []string{"run", script}
	},
}

var NodejsNpmBackend = api.LanguageBackend{
	Name:     "nodejs-npm",
	Command:  "npm",
	Lockfile: "package-lock.json",
	GetInstallCommand: func() []string {
		return []string{"install"}
	},
	GetRunCommand: func(script string) []string {
		return []string{"run", script}
	},
}
