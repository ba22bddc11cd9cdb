package main

import "github.com/jhoicas/Empaques-api/internal/cli"

func main() {
	cli.Execute()
}
