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
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"storyboarder/internal/domain"
	"storyboarder/internal/storage"
)

func newAnimateCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "animate <shot-number>",
		Short: "Animate a shot's still into a short video clip",
		Args:  cobra.ExactArgs(1),
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
			if !p.HasImage() {
				return fmt.Errorf("shot %d has no still yet; run generate first", n)
			}
			if err := orch.AnimatePanel(cmd.Context(), p.ID); err != nil {
				return err
			}
			if err := cctx.saveBoard(cmd.Context(), "animate"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Animated shot %d\n", n)
			return nil
		},
	}
}

func newNarrateCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "narrate <shot-number>",
		Short: "Synthesize a shot's dialogue as narration audio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, ph, err := cctx.ensureOrchestrator(cmd.Context())
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
			if p.Dialogue == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Shot %d has no dialogue\n", n)
				return nil
			}
			if err := orch.NarratePanel(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Narration written under %s\n", filepath.Join(ph.Root, storage.MediaDirName))
			return nil
		},
	}
}

func newAnimaticCommand(cctx *commandContext) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "animatic",
		Short: "Assemble the opening shots into a single animatic video",
		Long: `Animatic stitches the generated stills of the first shots into one clip,
honoring the transitions between them. At least 2 of the first 3 shots must
have stills.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, ph, err := cctx.ensureOrchestrator(cmd.Context())
			if err != nil {
				return err
			}
			ref, err := orch.AssembleAnimatic(cmd.Context())
			if err != nil {
				return err
			}
			if !domain.IsDataURI(ref) {
				fmt.Fprintf(cmd.OutOrStdout(), "Animatic available at %s\n", ref)
				return nil
			}
			_, data, err := domain.ParseDataURI(ref)
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(ph.Root, storage.MediaDirName, "animatic.mp4")
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write animatic: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Animatic written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output video path (default: <project>/media/animatic.mp4)")

	return cmd
}
