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
	"path/filepath"

	"github.com/spf13/cobra"

	"storyboarder/internal/domain"
	"storyboarder/internal/importer"
	"storyboarder/internal/storage"
	"storyboarder/internal/version"
)

func newInitCommand(cctx *commandContext) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "init <dir> [title]",
		Short: "Create a new storyboard project",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			title := filepath.Base(abs)
			if len(args) > 1 {
				title = args[1]
			}
			board := domain.Storyboard{
				Title:      title,
				Style:      style,
				Panels:     domain.Panels{},
				Characters: []domain.CharacterProfile{},
			}
			ph, err := storage.InitProject(abs, board)
			if err != nil {
				return err
			}
			cctx.ph = ph
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %q at %s\n", title, abs)
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Visual style applied to every generation")

	return cmd
}

func newImportCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <script-file>",
		Short: "Import a script file (txt, fdx, or pdf) into the project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := importer.ImportScript(args[0])
			if err != nil {
				return err
			}
			ph, err := cctx.openProject()
			if err != nil {
				return err
			}
			ph.Board.Script = text
			if err := storage.Save(ph); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%d characters of script text)\n", args[0], len(text))
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "storyboarder", version.String())
			return nil
		},
	}
}
