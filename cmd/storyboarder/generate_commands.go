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

	"storyboarder/internal/compositor"
)

func newGenerateCommand(cctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "generate [shot-number]",
		Short: "Generate the still image for one shot, or all shots with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("pass a shot number or --all")
			}
			orch, _, err := cctx.ensureOrchestrator(cmd.Context())
			if err != nil {
				return err
			}

			if all {
				if err := orch.GenerateAllImages(cmd.Context()); err != nil {
					return err
				}
			} else {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid shot number %q", args[0])
				}
				p, err := panelByNumber(orch, n)
				if err != nil {
					return err
				}
				if err := orch.GeneratePanelImage(cmd.Context(), p.ID); err != nil {
					return err
				}
			}
			if err := cctx.saveBoard(cmd.Context(), "generate"); err != nil {
				return err
			}

			done := 0
			for _, p := range orch.Store().Panels() {
				if p.HasImage() {
					done++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d panels have stills\n", done, orch.Store().Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Generate stills for every panel")

	return cmd
}

func newEditCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <shot-number> <instruction...>",
		Short: "Revise a shot's existing still with a text instruction",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, _, err := cctx.ensureOrchestrator(cmd.Context())
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid shot number %q", args[0])
			}
			p, err := panelByNumber(orch, n)
			if err != nil {
				return err
			}
			instruction := strings.Join(args[1:], " ")
			if err := orch.EditPanelImage(cmd.Context(), p.ID, instruction); err != nil {
				return err
			}
			if err := cctx.saveBoard(cmd.Context(), "edit"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Revised still for shot %d\n", n)
			return nil
		},
	}
}

func newOutpaintCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "outpaint <shot-number> <up|down|left|right|zoom-out>",
		Short: "Expand a shot's still beyond its current frame",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, _, err := cctx.ensureOrchestrator(cmd.Context())
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid shot number %q", args[0])
			}
			dir, err := compositor.ParseDirection(args[1])
			if err != nil {
				return err
			}
			p, err := panelByNumber(orch, n)
			if err != nil {
				return err
			}
			if err := orch.OutpaintPanelImage(cmd.Context(), p.ID, dir); err != nil {
				return err
			}
			if err := cctx.saveBoard(cmd.Context(), "outpaint"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Outpainted shot %d %s\n", n, dir)
			return nil
		},
	}
}
