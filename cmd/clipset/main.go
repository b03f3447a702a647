package main

import "github.com/clipset/clipset/internal/cli"

func main() {
	cli.Main()
}
