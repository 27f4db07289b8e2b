// Package procfs resolves the identity of a running process from the proc
// filesystem: executable path from <pid>/exe, Smack label from
// <pid>/attr and supplementary groups from the Groups line of <pid>/status.
//
// The proc root is configurable so tests can point the resolver at a fake
// tree under a temporary directory.
package procfs
