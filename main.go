package main

import "github.com/Dainampally-Akshay18/KMRL-Vault/cmd"

func main() {
	cmd.Execute()
}
