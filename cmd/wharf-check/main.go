/*
Copyright The Wharf Authors.
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package main implements wharf-check, a diagnostic tool that validates
// repository transport declarations against the standard connectors without
// performing any network I/O.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"wharf.land/wharf-go/connector"
	"wharf.land/wharf-go/connector/http"
	"wharf.land/wharf-go/connector/s3"
	"wharf.land/wharf-go/connector/sftp"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "wharf-check",
	Short: "Validate repository transport declarations",
	Long: `wharf-check validates repository transport declarations against the
standard connectors (http, sftp, s3 and local files). Validation is purely
static: no repository is contacted.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log validation traces")
}

// defaultRegistry assembles the standard connector set.
func defaultRegistry() (*connector.Registry, error) {
	return connector.NewRegistry(http.Connector, sftp.Connector, s3.Connector)
}

// newLogger returns the logger backing the validation trace. Verbose mode
// shows per-repository validation progress; otherwise only errors surface,
// since verdicts are printed separately.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.ErrorLevel)
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
