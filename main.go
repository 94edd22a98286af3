package main

import "github.com/Manu343726/sparcmc/cmd"

func main() {
	cmd.Execute()
}
