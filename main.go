package main

import (
	"github.com/factorysh/solsta/cmd"
)

func main() {
	cmd.Execute()
}
