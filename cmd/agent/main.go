// Command agent runs a Playwright-driven browser as the assistant's page
// agent, connected to the server's websocket hub.
package main

import (
	"VaniAssistant/cmd/agent/commands"
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := commands.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
