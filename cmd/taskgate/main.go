package main

import "github.com/ppiankov/taskgate/internal/cli"

func main() {
	cli.Execute()
}
