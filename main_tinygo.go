//go:build tinygo

package main

import (
	"colorbrowser/app"
	"colorbrowser/hal"
)

func main() {
	app.Run(hal.New())
}
