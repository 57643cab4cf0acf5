/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"storyboarder/internal/config"
	"storyboarder/internal/crash"
	"storyboarder/internal/domain"
	applog "storyboarder/internal/log"
)

func main() {
	applog.Init(applog.FromEnv())
	cctx := newCommandContext()
	defer func() { crash.Recover(cctx.ph) }()

	cmd := newRootCommand(cctx)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, errorMessage(err))
		}
		os.Exit(1)
	}
}

// errorMessage renders a terminal error for the user. A credential rejection
// mid-operation gets an explicit re-auth hint instead of a bare error line.
func errorMessage(err error) string {
	if errors.Is(err, domain.ErrCredentialRequired) {
		return fmt.Sprintf("Error: %v\nRe-authenticate with `storyboarder auth set` or set %s.", err, config.EnvAPIKey)
	}
	return fmt.Sprintf("Error: %v", err)
}
