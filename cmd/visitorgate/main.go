package main

import "github.com/scango/visitorgate/cmd/visitorgate/cmd"

func main() {
	cmd.Execute()
}
