/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"storyboarder/internal/importer"
)

func newAnalyzeCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [script-file]",
		Short: "Break a script into storyboard panels and a character dictionary",
		Long: `Analyze sends the script to the text model and replaces the current board
with the resulting shot list. Without an argument the project's previously
imported script is analyzed. The board history is reset afterwards.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, ph, err := cctx.ensureOrchestrator(cmd.Context())
			if err != nil {
				return err
			}

			script := ph.Board.Script
			if len(args) > 0 {
				script, err = importer.ImportScript(args[0])
				if err != nil {
					return err
				}
			}
			if strings.TrimSpace(script) == "" {
				return fmt.Errorf("no script to analyze; pass a file or run `storyboarder import` first")
			}

			res, err := orch.AnalyzeScript(cmd.Context(), script)
			if err != nil {
				return fmt.Errorf("analyze script: %w", err)
			}
			ph.Board.Script = script
			if err := cctx.saveBoard(cmd.Context(), "analyze"); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Analyzed script into %d panels, %d characters\n", len(res.Panels), len(res.Characters))
			for _, p := range res.Panels {
				fmt.Fprintf(cmd.OutOrStdout(), "  %2d. [%s] %s\n", p.Number, p.ShotType, p.VisualDescription)
			}
			for _, c := range res.Characters {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", c.Name, c.Description)
			}
			return nil
		},
	}
}
