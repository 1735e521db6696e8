package main

import "github.com/tesh254/ukify/cmd"

func main() {
	cmd.Execute()
}
