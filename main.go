package main

import "github.com/jd-santos/cookdown/internal/cli"

func main() {
	cli.Execute()
}
