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

// NewCheckCmd creates a new check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	var (
		flags    corpusFlags
		showDiff bool
	)

	cmd := &cobra.Command{
		Use:   "check [pass...]",
		Short: "Fail if any file would change",
		Long: `Check runs the pipeline without writing and exits non-zero when any
file would change. A tree the pipeline has already repaired passes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := flags.apply(cmd, o.Config)
			if err != nil {
				return err
			}

			log.FromContext(ctx).Header("check")

			report, err := repair(ctx, o, cfg, args, repairMode{dryRun: true, showDiff: showDiff})
			if err != nil {
				return err
			}

			switch {
			case len(report.Modified) > 0:
				return errors.Errorf("%w: %d of %d", ErrWouldChange, len(report.Modified), report.Total())
			case len(report.Failed) > 0:
				return errors.Errorf("%d files could not be checked", len(report.Failed))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a diff for every file that would change")

	return cmd
}
