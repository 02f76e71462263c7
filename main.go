package main

import "github.com/user/nessus2csv/cmd"

func main() {
	cmd.Execute()
}
