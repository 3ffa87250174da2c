package main

import "readly_backend/internal/app"

func main() {
	app.Run()
}
