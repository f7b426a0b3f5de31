package main

import "github.com/naka-gawa/readme-stats/cmd"

func main() {
	cmd.Execute()
}
