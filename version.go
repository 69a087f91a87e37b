package espalier

// Version is the library version, overridable at build time via
// -ldflags "-X github.com/aretw0/espalier.Version=...".
var Version = "0.3.0"
