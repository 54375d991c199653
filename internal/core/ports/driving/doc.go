// Package driving defines the interfaces exposed by core to the CLI.
package driving
