// janus finds optimal solutions to the 3x3x3 Rubik's Cube.
package main

import (
	"github.com/gdionne/janus/internal/cli"
)

func main() {
	cli.Execute()
}
