package main

import "github.com/Tiliavir/time-manager/cmd"

func main() {
	cmd.Execute()
}
