package main

import "github.com/DRSN-tech/grocery-backend/internal/app"

func main() {
	app.Run()
}
