package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	config, err := parseArgs(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if config.Version {
		fmt.Println(Version())
		return
	}

	err = NewApp(config).Run()
	if err != nil {
		log.Fatal(err)
	}
}
