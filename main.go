package main

import "quiz-manager/cmd"

func main() {
	cmd.Execute()
}
