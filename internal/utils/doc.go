// Package utils holds the CLI plumbing shared by commands: the Viper-backed
// ConfigurationLoader, the zap LoggerFactory and the command context accessor.
package utils
