package main

import "property-manager/cmd"

func main() {
	cmd.Execute()
}
