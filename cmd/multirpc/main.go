package main

import (
	"github.com/flashbots/multirpc/cli"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cli.Main()
}
