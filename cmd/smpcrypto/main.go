// Command smpcrypto evaluates the Bluetooth LE security manager functions
// from the command line. All values are hex, most significant octet first.
package main

import (
	"fmt"
	"os"

	"github.com/rigado/smpcrypto"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "smpcrypto"
	app.Usage = "BLE security manager crypto toolbox"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "enable trace logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.Bool("verbose") {
			smpcrypto.SetLogLevelMax()
		}
		return nil
	}
	app.Commands = commands()
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
