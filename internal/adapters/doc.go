// Package adapters contains the infrastructure implementations of the port
// interfaces in internal/ports.
//
// Boundaries:
//
//   - Adapters implement internal/ports interfaces
//   - Adapters import internal/domain, internal/ports and third-party libraries
//   - internal/domain and internal/app never import a concrete adapter
//   - Concrete wiring happens in cmd/credjar (composition root)
//
// Inbound adapters (driving):
//
// cookieapi (inbound/cookieapi/)
//
//   - Drives: ports.CredentialStore
//   - Technology: net/http with go-chi over a Unix socket
//   - Callers are identified with SO_PEERCRED (golang.org/x/sys/unix)
//
// Outbound adapters (driven):
//
// entropy (outbound/entropy/)
//
//   - Implements: ports.TokenSource over crypto/rand
//
// procfs (outbound/procfs/)
//
//   - Implements: ports.IdentityResolver
//   - Reads the executable path with prometheus/procfs, the Smack label from
//     attr/ and the supplementary groups from status
//
// liveness (outbound/liveness/)
//
//   - Implements: ports.ProcessMonitor with gopsutil
//
// compose (outbound/compose/)
//
//   - Implements: ports.AdapterFactory for the local host
//   - Passed to app.Bootstrap
//
// Dependency flow:
//
//	cmd/credjar (composition root)
//	    ↓ creates
//	compose.HostAdapterFactory (implements ports.AdapterFactory)
//	    ↓ passed to
//	app.Bootstrap
//	    ↓ builds
//	app.CookieJar + app.Reaper
//	    ↓ served by
//	cookieapi.Server
package adapters
