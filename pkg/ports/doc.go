/*
Package ports defines the interfaces between the Espalier core and the
outside world: where configured action lists come from, where post context
records come from, and the host capabilities (viewport geometry, history,
clock) the engine needs injected to stay testable without a real browser
environment.
*/
package ports
