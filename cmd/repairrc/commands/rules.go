// Copyright 2025 walteh LLC
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
package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/walteh/repairrc/cmd/repairrc/opts"
	"github.com/walteh/repairrc/pkg/rule"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(o *opts.RootOpts) *cobra.Command {
	var showPatterns bool

	cmd := &cobra.Command{
		Use:   "rules [pass...]",
		Short: "List passes and their rules in pipeline order",
		RunE: func(cmd *cobra.Command, args []string) error {
			pl, err := o.Pipeline(args...)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			header := []string{"Pass", "#", "Rule", "Scope", "Description"}
			if showPatterns {
				header = append(header, "Pattern")
			}
			table.SetHeader(header)
			table.SetBorder(false)
			table.SetCenterSeparator("")
			table.SetAutoWrapText(false)
			table.SetAutoMergeCells(true)

			rules := 0
			for _, p := range pl {
				for i, r := range p.Rules {
					row := []string{p.Name, strconv.Itoa(i + 1), r.ID(), scopeString(r.Scope()), r.Description()}
					if showPatterns {
						row = append(row, r.Pattern())
					}
					table.Append(row)
					rules++
				}
			}

			footer := make([]string, len(header))
			footer[0] = fmt.Sprintf("%d passes", len(pl))
			footer[2] = fmt.Sprintf("%d rules", rules)
			table.SetFooter(footer)

			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPatterns, "patterns", false, "include the match pattern of every rule")

	return cmd
}

func scopeString(s rule.Scope) string {
	if s == nil {
		return "*"
	}
	return s.String()
}
