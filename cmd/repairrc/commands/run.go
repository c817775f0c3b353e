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
	"github.com/spf13/cobra"
	"github.com/walteh/repairrc/cmd/repairrc/opts"
	"github.com/walteh/repairrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	var (
		flags  corpusFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "run [pass...]",
		Short: "Repair every file under the root",
		Long: `Run applies the pipeline to every eligible file under the root and
rewrites the files that change. Files no rule matches are never touched.

With pass names only those passes run, in pipeline order.`,
		Example: `  repairrc run
  repairrc run --root app/lib --jobs 4 --converge 3
  repairrc run remove-language-provider repair-comments --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := flags.apply(cmd, o.Config)
			if err != nil {
				return err
			}

			log.FromContext(ctx).Header("run")

			report, err := repair(ctx, o, cfg, args, repairMode{dryRun: dryRun})
			if err != nil {
				return err
			}

			if len(report.Failed) > 0 {
				return errors.Errorf("%d files could not be repaired", len(report.Failed))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")

	return cmd
}
