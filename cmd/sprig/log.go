package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func newLogger(verbose bool) *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	l.Level = logrus.InfoLevel
	if verbose {
		l.Level = logrus.DebugLevel
	}
	return l
}

// fail logs err and exits with the given code.
func (rcc *rootCmdConfig) fail(code int, err error) {
	rcc.log.Error(err)
	os.Exit(code)
}
