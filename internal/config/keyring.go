/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "storyboarder"
	keyringAccount = "gemini_api_key"
)

// ErrNoAPIKey reports that no key is stored yet.
var ErrNoAPIKey = errors.New("no API key stored")

// Indirection so tests can swap the OS keyring for an in-memory map.
var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

// APIKey fetches the generation API key from the OS keyring.
func APIKey() (string, error) {
	key, err := keyringGet(keyringService, keyringAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoAPIKey
		}
		return "", err
	}
	if key == "" {
		return "", ErrNoAPIKey
	}
	return key, nil
}

// StoreAPIKey saves the key in the OS keyring.
func StoreAPIKey(key string) error {
	if key == "" {
		return errors.New("API key must not be empty")
	}
	return keyringSet(keyringService, keyringAccount, key)
}

// DeleteAPIKey removes the stored key, for re-authentication after a
// credential failure. A missing entry is not an error.
func DeleteAPIKey() error {
	err := keyringDelete(keyringService, keyringAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
