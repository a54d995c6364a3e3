package main

import (
	"os"

	"github.com/arthur-debert/agm/cmd/agm"
)

func main() {
	os.Exit(agm.Execute())
}
