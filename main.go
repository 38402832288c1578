package main

import (
	"embed"
	"os"

	"signupweb/cmd"
)

//go:embed static
var staticFS embed.FS

var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(staticFS); err != nil {
		os.Exit(1)
	}
}
