package main

import (
	"github.com/Laisky/miridev-mcp/cmd"
)

func main() {
	cmd.Execute()
}
