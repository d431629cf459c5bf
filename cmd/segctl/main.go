package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
