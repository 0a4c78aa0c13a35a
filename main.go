// =============================================================================
// Seatmap Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Seatmap Converter CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   seatmap FILE       - Convert a seatmap XML file
//   seatmap version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core logic (seatmap parsing, validation, writers)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/seatmap-converter/cmd"
)

func main() {
	cmd.Execute()
}
