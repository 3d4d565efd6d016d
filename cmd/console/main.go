package main

import "github.com/medidesk/console/cmd/console/command"

func main() {
	command.Execute()
}
