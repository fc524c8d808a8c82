// Package pending records changelog entries into per-branch pending files.
//
// A Collector asks the operator for change records until they decline to add
// another. Service.Merge names the pending file after the sanitized current
// branch, reconciles a file left by an earlier run by appending or replacing
// it, writes the rendered records and optionally commits the file. The add and
// show cobra commands wire these pieces to git, the terminal and the disk.
package pending
