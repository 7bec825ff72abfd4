package main

import "github.com/tsbuildhq/tsbuild/cmd"

func main() {
	cmd.Execute()
}
