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
	"time"

	"github.com/spf13/cobra"

	"storyboarder/internal/storage"
)

func newSnapshotCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect and manage board snapshots in the project index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded board snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := cctx.openProject()
			if err != nil {
				return err
			}
			infos, err := storage.ListBoardSnapshots(cmd.Context(), ph, limit)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No snapshots recorded yet")
				return nil
			}
			for _, info := range infos {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", info.TS.Local().Format(time.RFC3339), info.Label)
			}
			return nil
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum snapshots to list")
	cmd.AddCommand(listCmd)

	var keep int
	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old snapshots, keeping the newest ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := cctx.openProject()
			if err != nil {
				return err
			}
			n, err := storage.PruneBoardSnapshots(cmd.Context(), ph, keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d snapshots\n", n)
			return nil
		},
	}
	pruneCmd.Flags().IntVarP(&keep, "keep", "k", 20, "Snapshots to keep")
	cmd.AddCommand(pruneCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "restore",
		Short: "Restore the board from the latest snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := cctx.openProject()
			if err != nil {
				return err
			}
			panels, ts, err := storage.LatestBoardSnapshot(cmd.Context(), ph)
			if err != nil {
				return err
			}
			if panels == nil {
				return fmt.Errorf("no snapshots recorded yet")
			}
			ph.Board.Panels = panels
			if err := storage.Save(ph); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored board from snapshot taken %s (%d panels)\n", ts.Local().Format(time.RFC3339), len(panels))
			return nil
		},
	})

	return cmd
}
