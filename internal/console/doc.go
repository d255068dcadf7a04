// Package console provides the management operations used by the console on
// top of the rest package: reading the default cache manager and its caches,
// reading and writing cache entries, and inspecting cache configuration.
//
// Read operations return typed values and an error, which is a *rest.Failure
// for transport and HTTP problems. Write operations return a
// rest.ActionResponse and never fail.
package console
