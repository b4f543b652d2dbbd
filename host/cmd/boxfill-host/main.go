// boxfill-host drives the waveform generator over its serial console and runs
// the packaging machine simulator.
package main

import (
	"os"

	"github.com/golang/glog"
)

func main() {
	err := Execute()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
