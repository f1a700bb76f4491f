package main

import "github.com/oshokin/alarm-thresholds/cmd/alarm-thresholds/cmd"

func main() {
	cmd.Execute()
}
