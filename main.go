package main

import "github.com/kvrdb/kvr/cmd"

func main() {
	cmd.Execute()
}
