// Command tinyml-panel serves the actuator control panel on the access point
// and runs the periodic temperature/humidity anomaly classifier.
package main

import (
	"log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
