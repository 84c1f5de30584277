package main

import (
	"github.com/OpenTraceLab/OpenTraceERC/cmd/oterc/cmd"
)

func main() {
	cmd.Execute()
}
