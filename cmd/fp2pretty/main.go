package main

import "github.com/OpenTraceLab/freepcb2pretty/cmd/fp2pretty/cmd"

func main() {
	cmd.Execute()
}
