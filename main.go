package main

import "github.com/KaramelBytes/revlens-cli/cmd"

func main() {
	cmd.Execute()
}
