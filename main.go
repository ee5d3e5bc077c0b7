package main

import "github.com/ValentinKolb/dConf/cmd"

func main() {
	cmd.Execute()
}
