package main

import "github.com/studioline/intake-backend/internal/cli"

func main() {
	cli.Execute()
}
