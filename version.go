package quotecard

import "fmt"

// Version information for the GoQuoteCard library.
const (
	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0
)

// Version is the full version string of the GoQuoteCard library.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
