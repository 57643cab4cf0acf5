/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(cctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "storyboarder",
		Short:         "AI-assisted storyboard generation from screenplay scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cctx.projectFlag, "project", "p", "", "Project directory (default: current directory)")

	rootCmd.AddCommand(newInitCommand(cctx))
	rootCmd.AddCommand(newAnalyzeCommand(cctx))
	rootCmd.AddCommand(newImportCommand(cctx))
	rootCmd.AddCommand(newGenerateCommand(cctx))
	rootCmd.AddCommand(newEditCommand(cctx))
	rootCmd.AddCommand(newOutpaintCommand(cctx))
	rootCmd.AddCommand(newAnimateCommand(cctx))
	rootCmd.AddCommand(newNarrateCommand(cctx))
	rootCmd.AddCommand(newAnimaticCommand(cctx))
	rootCmd.AddCommand(newCharacterCommand(cctx))
	rootCmd.AddCommand(newExportCommand(cctx))
	rootCmd.AddCommand(newSnapshotCommand(cctx))
	rootCmd.AddCommand(newAuthCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
