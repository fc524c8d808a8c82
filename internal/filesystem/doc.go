// Package filesystem provides the operating system backed file access used to
// create, extend and discard per-branch pending files.
package filesystem
