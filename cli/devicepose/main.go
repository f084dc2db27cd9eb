// Package main is the devicepose command itself.
package main

import (
	"log"
	"os"

	devicecli "go.viam.com/devicepose/cli"
)

func main() {
	if err := devicecli.NewApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
