// Package wiring registers every Graft node the CLI binary assembles.
// Importing this package for its side effects is the one place that needs
// to know every adapter and engine package exists.
package wiring

import (
	// Register adapter nodes.
	_ "maek/internal/adapters/cas"
	_ "maek/internal/adapters/config"
	_ "maek/internal/adapters/fs"
	_ "maek/internal/adapters/logger"
	_ "maek/internal/adapters/shell"
	// Register the application node.
	_ "maek/internal/app"
)
