package main

import (
	"os"

	"github.com/amdshrif/ncbi-client/cmd"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "docs" {
		makeDocs() // regenerate the Markdown command docs
		return
	}
	cmd.Execute() // initialize cobra commands
}
