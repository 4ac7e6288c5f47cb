// Package cache provides a small TTL cache for encoded health reports.
//
// Health endpoints that are polled frequently use it to serve a recent report
// instead of running every probe on every request.
package cache
