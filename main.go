package main

import "github.com/KaramelBytes/corrgraph/cmd"

func main() {
	cmd.Execute()
}
