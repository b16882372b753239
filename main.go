package main

import "github.com/mrtimely/timely-cli/cmd"

func main() {
	cmd.Execute()
}
