package main

import "github.com/prflight/prflight/cmd"

func main() {
	cmd.Execute()
}
