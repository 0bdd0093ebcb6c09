package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/paddle-arena/internal/input"
)

var inputsCmd = &cobra.Command{
	Use:   "inputs",
	Short: "List all available input drivers",
	Long:  `Shows a list of all input drivers that can steer the paddle.`,
	Run:   runInputs,
}

func runInputs(cmd *cobra.Command, args []string) {
	drivers := input.List()

	if len(drivers) == 0 {
		fmt.Println("No input drivers available.")
		return
	}

	fmt.Println("Available input drivers:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, d := range drivers {
		if len(d.Name) > maxNameLen {
			maxNameLen = len(d.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	// Print drivers
	for _, d := range drivers {
		fmt.Printf("  %-*s  %s\n", maxNameLen, d.Name, d.Description)
	}

	fmt.Println()
	fmt.Println("Run 'arena run --input <name>' to use a driver.")
}
