package main

import "github.com/vietddude/advisor/internal/cli"

func main() {
	cli.Execute()
}
