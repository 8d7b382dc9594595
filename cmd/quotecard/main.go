// Command quotecard renders testimonial cards from YAML card files.
//
// Commands
//
//   - render   Render a card once and save it
//   - watch    Re-render and save a card every time its file changes
//   - layouts  List layouts and font families
//   - version  Print the library version
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
