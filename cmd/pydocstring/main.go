package main

import (
	"os"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/log"
)

func main() {
	a := newApp()
	err := newRootCmd(a).Execute()
	_ = log.Sync()
	if err != nil {
		printError(a.errOut, err)
		os.Exit(1)
	}
}
