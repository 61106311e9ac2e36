package main

import (
	"github.com/joho/godotenv"

	"github.com/SarthakNawali/ai-word-generator/cmd"
)

// Build is set via ldflags at build time
var Build = "unknown"

func main() {
	// A missing .env is fine; keys may come from the environment or config file.
	_ = godotenv.Load()

	cmd.SetBuild(Build)
	cmd.Execute()
}
