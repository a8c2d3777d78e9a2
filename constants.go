package main

import "time"

// CLI defaults
const (
	AppName        = "gopersona"
	DefaultTimeout = 2 * time.Minute
	ExitFailure    = 1
)
