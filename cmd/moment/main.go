// Command moment is the command line front end of the moment engine.
//
//	moment start-of month "2016-03-15 23:36:12.532"
//	moment add 1 dayOfMonth 2016-03-15T23:36:12.532Z --tz Europe/Berlin
//	moment compare 2016-03-15T23:00:00Z 2016-03-15T08:00:00Z --unit dayOfMonth
package main

import (
	"os"

	"github.com/warp/moment/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
