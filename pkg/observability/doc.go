/*
Package observability provides tools for monitoring the Substrate designer.

It turns designer lifecycle hooks into Prometheus metrics and structured log lines,
and tracks the number of live sessions through session manager hooks.
*/
package observability
