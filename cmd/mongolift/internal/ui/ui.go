// Package ui holds the CLI output helpers.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	successStyle = color.New(color.FgGreen, color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
	infoStyle    = color.New(color.FgCyan)
	sectionStyle = color.New(color.FgWhite, color.Bold)
)

// PrintSuccess prints a success message.
func PrintSuccess(format string, args ...interface{}) {
	successStyle.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...interface{}) {
	errorStyle.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// PrintInfo prints an informational message.
func PrintInfo(format string, args ...interface{}) {
	infoStyle.Printf(format+"\n", args...)
}

// PrintSection prints a section heading.
func PrintSection(title string) {
	sectionStyle.Println(title)
}

// PrintList prints items as a bulleted list.
func PrintList(items []string) {
	for _, item := range items {
		fmt.Printf("  • %s\n", item)
	}
}
