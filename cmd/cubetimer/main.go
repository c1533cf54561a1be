// Command cubetimer is a speedcubing timer with per-phase solve analysis.
package main

import "cubetimer/internal/cli"

func main() {
	cli.Execute()
}
