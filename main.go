package main

import "github.com/nekruzvatanshoev/easydrive/pkg/cmd"

func main() {
	cmd.Execute()
}
