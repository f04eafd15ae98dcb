package main

import (
	"github.com/frontlab/todo-api/app"
	_ "github.com/frontlab/todo-api/docs"
)

// @title Todo API
// @version 1.0.0
// @description REST API for managing todos - designed for learning frontend development
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name api-key
func main() {
	// setup and run app
	err := app.SetupAndRunApp()
	if err != nil {
		panic(err)
	}
}
