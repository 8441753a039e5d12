package main

import (
	"github.com/decolog/decolog/internal/client/cli"
)

func main() {
	cli.Execute()
}
