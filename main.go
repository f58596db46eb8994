package main

import (
	"os"

	"github.com/mkrivushin/libcat/app"
)

func main() {
	os.Exit(app.CLI(os.Args[1:]))
}
