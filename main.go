package main

import "github.com/notargets/cotangent/cmd"

func main() {
	cmd.Execute()
}
