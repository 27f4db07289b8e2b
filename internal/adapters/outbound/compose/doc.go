// Package compose provides the AdapterFactory implementation that composes the
// concrete outbound adapters used by the credjar service: the crypto/rand
// token source, the procfs identity resolver and the gopsutil liveness monitor.
//
// The factory is built from the resolver section of the configuration file
// and is consumed by app.Bootstrap.
package compose
