package main

import "joplin/console/cmd"

func main() {
	cmd.Execute()
}
