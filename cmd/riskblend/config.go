package main

import (
	"time"

	"github.com/peter-kozarec/riskblend/pkg/middleware"
)

const (
	Version = "0.1.0"

	DefaultReturnsColumn = "return"
	DefaultListenAddress = ""

	ShutdownTimeout = 5 * time.Second
	LoadTimeout     = 30 * time.Second

	MonitorFlags = middleware.MonitorErrors | middleware.MonitorDegenerate
)
