package cli

// version is set at build time via -ldflags "-X .../cli.version=...".
var version = "dev"

// versionTemplate matches the output of `docs-dataset --version`.
const versionTemplate = "docs-dataset version {{.Version}}\n"

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
		rootCmd.Version = v
	}
}
