package main

import (
	"os"

	"github.com/yashsarjekar/rmbs-credit-evaluator/cmd/creditrating/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
