package main

import "flaggingd/internal/flagctl"

func main() { flagctl.Execute() }
