// Package cli builds the pending command-line interface: the Cobra root command
// with its add, show and config subcommands, the layered configuration
// (embedded defaults, config.yaml, PENDING_* environment variables, flags) and
// the zap logger shared by every command.
package cli
