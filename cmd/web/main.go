package main

import "skillswap/internal/app"

func main() {
	app.Run()
}
