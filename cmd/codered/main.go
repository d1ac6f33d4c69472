package main

import (
	"github.com/HannanLK/code-red-server/internal/cli"
)

func main() {
	cli.Execute()
}
