package ports

// ProcessIdentity is the identity snapshot returned by an IdentityResolver.
// No methods: conversion/validation belong in app/domain.
type ProcessIdentity struct {
	Path   string `json:"path" yaml:"path"`
	Label  string `json:"label" yaml:"label"`
	Groups []int  `json:"groups" yaml:"groups"`
}

// PeerCredentials are the kernel-verified credentials of a socket peer.
type PeerCredentials struct {
	PID int `json:"pid" yaml:"pid"`
	UID int `json:"uid" yaml:"uid"`
	GID int `json:"gid" yaml:"gid"`
}
