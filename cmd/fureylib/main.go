package main

import "github.com/kylepfurey/FureyLib-sub005/internal/cli"

func main() {
	cli.Execute()
}
