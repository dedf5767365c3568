// xclock extends the Windows taskbar clock tooltip with system uptime and
// the ISO week number.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
