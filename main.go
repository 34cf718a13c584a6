package main

import (
	"os"

	"github.com/mcpsuite/aws-mcp/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}
