package main

import "bookjan/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
