package main

import "github.com/jsphweid/ams/cmd"

func main() {
	cmd.Execute()
}
