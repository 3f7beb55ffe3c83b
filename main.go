package main

import "github.com/kozaktomas/comic-composer/cmd"

func main() {
	cmd.Execute()
}
