package main

import "inboxd/cmd"

func main() {
	cmd.Execute()
}
