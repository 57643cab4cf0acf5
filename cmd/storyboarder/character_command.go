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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"storyboarder/internal/storage"
)

func newCharacterCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "character",
		Short: "Manage the character dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List characters and their descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := cctx.openProject()
			if err != nil {
				return err
			}
			if len(ph.Board.Characters) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No characters yet; run `storyboarder analyze` first")
				return nil
			}
			for i, c := range ph.Board.Characters {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s: %s\n", i+1, c.Name, c.Description)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <index> <description...>",
		Short: "Rewrite one character's visual description",
		Long: `Set replaces the description used to keep the character consistent across
panel generations. The index is 1-based, as printed by list.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := cctx.openProject()
			if err != nil {
				return err
			}
			idx, err := strconv.Atoi(args[0])
			if err != nil || idx < 1 || idx > len(ph.Board.Characters) {
				return fmt.Errorf("character index out of range (1..%d)", len(ph.Board.Characters))
			}
			desc := strings.Join(args[1:], " ")
			ph.Board.Characters[idx-1].Description = desc
			if err := storage.Save(ph); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", ph.Board.Characters[idx-1].Name)
			return nil
		},
	})

	return cmd
}
