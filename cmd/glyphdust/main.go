package main

import "github.com/ThatOtherAndrew/Glyphdust/cmd"

func main() {
	cmd.Execute()
}
