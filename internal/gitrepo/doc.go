// Package gitrepo answers the handful of repository questions the pending
// recorder needs: which branch is checked out, where origin points, and how to
// stage and commit a single file.
//
// RepositoryManager drives the git executable through execshell, while
// GoGitRepositoryManager performs the same operations in-process with go-git
// for machines without a git binary on PATH.
package gitrepo
