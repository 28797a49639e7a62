package main

import "katador_backend/internal/app"

func main() {
	app.Run()
}
