/*
Package observability provides Prometheus instrumentation for the resolution
engine.

It exposes the engine's lifecycle events as counters, keyed by action kind
and render context, so hosts can see which actions their lists actually
resolve and why items get skipped.
*/
package observability
