// The main package for the hansard executable.
package main

import (
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
