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

	"storyboarder/internal/export"
	"storyboarder/internal/storage"
)

func newExportCommand(cctx *commandContext) *cobra.Command {
	var out string
	var media bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the storyboard as a PDF contact sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := cctx.openProject()
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(ph.Root, "exports", "storyboard.pdf")
			} else if !filepath.IsAbs(out) {
				out = filepath.Join(ph.Root, "exports", out)
			}
			if err := export.WriteContactSheet(ph.Board.Panels, out, export.ContactSheetOptions{
				Title: ph.Board.Title,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contact sheet written to %s\n", out)

			if media {
				n, err := storage.ExportPanelMedia(cmd.Context(), ph, ph.Board.Panels)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d media files to %s\n", n, filepath.Join(ph.Root, storage.MediaDirName))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output PDF path (default: <project>/exports/storyboard.pdf)")
	cmd.Flags().BoolVar(&media, "media", false, "Also extract inline panel media to files")

	return cmd
}
