// Package probes provides ready-made health.Probe implementations for the
// dependencies a service usually needs before it can take traffic: HTTP
// endpoints, TCP listeners, executables, directories, SQLite databases, heap
// headroom and environment variables.
//
// Probes report an unready dependency as a failed outcome and reserve errors
// for probes that could not run at all, such as a malformed request. Network
// probes may retry within their check timeout.
//
// Build and BuildRegistry turn configuration entries into registered checks.
package probes
