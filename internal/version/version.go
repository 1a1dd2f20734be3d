// Package version records the release version printed by commands.
package version

// Version is the release version of the routing tools.
var Version = "0.1.0"
