package main

import "github.com/satyammistari/schemadoc/cmd"

func main() {
	cmd.Execute()
}
