package main

import (
	"fmt"
	"os"

	"github.com/viant/jmapper/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: jmapper CONFIG_URL")
		os.Exit(1)
	}
	err := service.RunApp(os.Args[1])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
