package main

import (
	"github.com/strengthsync/strengthsync/internal/cli"
)

func main() {
	cli.Execute()
}
