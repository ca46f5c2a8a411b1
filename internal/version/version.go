// ABOUTME: Build and product identification
// ABOUTME: Reported in the TUI header and the render command's banner
package version

// Version is overridden at build time with -ldflags "-X ...version.Version=..."
var Version = "0.3.0"

const (
	Product      = "Resonate Scope"
	Manufacturer = "Resonate"
)
