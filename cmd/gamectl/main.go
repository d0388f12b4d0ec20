package main

import (
	"github.com/flooyd/gameserver/internal/cli"
)

func main() {
	cli.Execute()
}
