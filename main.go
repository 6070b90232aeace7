package main

import (
	prepwise "github.com/prepwise/prepwise/app"
)

func main() {
	app := prepwise.New(nil, nil)
	app.Start()
}
