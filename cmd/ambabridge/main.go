package main

import "github.com/sarchlab/ambabridge/cmd"

func main() {
	cmd.Execute()
}
