package main

import "github.com/KaramelBytes/aicontext-cli/cmd"

func main() {
	cmd.Execute()
}
