// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command ispbench runs the Bayer ISP pipeline repeatedly on a raw frame and
// reports per-stage timings.
//
// Usage:
//
//	ispbench run --raw data/Indoor1_2592x1536_10bit_GRBG.raw --backend parallel -n 20
//	ispbench run --synthetic 1920x1080 --backend vector
//	ispbench datasets data/
//	ispbench backends
//	ispbench info
//
// The configuration of a raw frame defaults to the file next to it named
// <stem>-configs.yml.
package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	log := logrus.New()
	if err := newRootCmd(log).Execute(); err != nil {
		log.WithError(err).Error("ispbench failed")
		os.Exit(1)
	}
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:           "ispbench",
		Short:         "Benchmark the Bayer ISP pipeline backends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogger(log, cmd.ErrOrStderr(), debug)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newRunCmd(log),
		newDatasetsCmd(),
		newBackendsCmd(),
		newInfoCmd(),
	)
	return root
}

// initLogger uses colored text output in debug mode and JSON otherwise.
func initLogger(logger *logrus.Logger, out io.Writer, debugMode bool) {
	logger.SetOutput(out)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}
