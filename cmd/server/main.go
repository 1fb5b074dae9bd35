package main

import (
	"os"

	"loomchat/backend/internal/app"
)

// @title           LoomChat Backend API
// @version         1.0
// @description     Streaming generation pipeline for the LoomChat desktop client.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
