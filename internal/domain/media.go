/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Media references travel through the pipeline as strings: either data URIs
// for inline payloads or remote URIs handed back by the generation service.

// ErrCredentialRequired marks the one failure class that must interrupt
// silent-failure handling: the generation service rejected the configured
// credential (e.g. no billing-enabled key selected). Callers detect it with
// errors.Is and trigger a credential re-selection flow.
var ErrCredentialRequired = errors.New("generation credential rejected; re-select an API key")

// DataURI encodes a payload as a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI decodes a base64 data URI into its MIME type and payload.
func ParseDataURI(uri string) (mime string, data []byte, err error) {
	const scheme = "data:"
	if !strings.HasPrefix(uri, scheme) {
		return "", nil, fmt.Errorf("not a data URI")
	}
	rest := uri[len(scheme):]
	sep := strings.IndexByte(rest, ',')
	if sep < 0 {
		return "", nil, fmt.Errorf("malformed data URI: missing payload separator")
	}
	meta, payload := rest[:sep], rest[sep+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URI encoding %q", meta)
	}
	mime = strings.TrimSuffix(meta, ";base64")
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI payload: %w", err)
	}
	return mime, data, nil
}

// IsDataURI reports whether the reference carries an inline payload.
func IsDataURI(uri string) bool { return strings.HasPrefix(uri, "data:") }
