// SheetYield - guillotine sheet cutting planner
//
// Packs one sheet with as many demanded figures as fit, then scales the
// layout to the number of identical sheets that covers every demand.
//
// Build:
//   go build -o sheetyield ./cmd/sheetyield
//
// Examples:
//   sheetyield plan --sheet 2440x1220 --margin 10 --figure 600x400:12:r --figure 300x300:20
//   sheetyield export --input parts.csv --pdf plan.pdf --gcode sheet.nc
//   sheetyield serve --addr :8080

package main

import "github.com/piwi3910/SheetYield/cmd/sheetyield/cmd"

func main() {
	cmd.Execute()
}
