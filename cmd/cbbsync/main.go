package main

import (
	"cbbsync/cmd/cbbsync/cmd"
)

func main() {
	cmd.Execute()
}
