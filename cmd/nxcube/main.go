// nxcube - an NxNxN twisty cube in the terminal.
package main

import (
	"github.com/SeamusWaldron/nxcube/internal/cli"
)

func main() {
	cli.Execute()
}
