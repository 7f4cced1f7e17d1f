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

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var protocolsCmd = &cobra.Command{
	Use:   "protocols",
	Short: "List the supported repository protocols",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := defaultRegistry()
		if err != nil {
			return err
		}
		for _, scheme := range registry.AllSchemes() {
			fmt.Fprintln(cmd.OutOrStdout(), scheme)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(protocolsCmd)
}
