package main

import "github.com/josephlewis42/simpleshell/cmd"

func main() {
	cmd.Execute()
}
