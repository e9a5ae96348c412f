package main

import "ui_mockups/cmd"

func main() {
	cmd.Execute()
}
