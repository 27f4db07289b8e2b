// Package ports defines the inbound and outbound ports (interfaces and types)
// used to decouple the credential jar from its collaborators.
//
// Files and responsibilities:
//
//   - inbound.go: CredentialStore, the operations the broker-facing API
//     drives (Issue, Find, RemoveAll).
//   - outbound.go: the ports the jar calls out to. TokenSource (entropy),
//     IdentityResolver (executable path, MAC label, groups for a pid),
//     ProcessMonitor (liveness) and the AdapterFactory that builds them.
//     Each interface documents its sentinel errors in an "Error Contract".
//   - types.go: shared data types ProcessIdentity and PeerCredentials.
package ports
