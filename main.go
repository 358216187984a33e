package main

import "github.com/Famito-GH/11.SestaveniIlustrace/cmd"

func main() {
	cmd.Execute()
}
