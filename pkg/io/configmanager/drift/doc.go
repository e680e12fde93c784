// Package configmanager loads Drift configurations for kubedrift commands.
//
// Configuration is merged from four sources with increasing priority:
// defaults, a kubedrift.yaml config file, KUBEDRIFT_ environment variables,
// and command-line flags. Flags are generated from field selectors so the
// flag surface and the config schema cannot drift apart.
package configmanager
