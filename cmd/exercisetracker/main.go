package main

import "github.com/example/exercise-tracker/cmd"

func main() {
	cmd.Execute()
}
