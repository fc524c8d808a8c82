// Package execshell runs external tools on behalf of the pending commands.
//
// ShellExecutor wraps a CommandRunner with structured zap logging and typed
// failures, OSCommandRunner spawns real processes, and CommandEventObserver lets
// the console renderer echo git invocations while they run.
package execshell
