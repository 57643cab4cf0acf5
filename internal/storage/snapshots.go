/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"storyboarder/internal/domain"
)

// language=SQL
// dialect=SQLite
const insertBoardSnapshotSQL = `INSERT INTO board_snapshots(ts, label, blob) VALUES (?, ?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestBoardSnapshotSQL = `SELECT ts, blob FROM board_snapshots ORDER BY ts DESC, id DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const listBoardSnapshotsSQL = `SELECT ts, label FROM board_snapshots ORDER BY ts DESC, id DESC LIMIT ?`

// language=SQL
// dialect=SQLite
const pruneBoardSnapshotsSQL = `DELETE FROM board_snapshots WHERE id NOT IN (
	SELECT id FROM board_snapshots ORDER BY ts DESC, id DESC LIMIT ?
)`

// SnapshotInfo describes one stored board snapshot.
type SnapshotInfo struct {
	TS    time.Time
	Label string
}

// SaveBoardSnapshot persists the panel collection as a labeled JSON blob in
// the project's index database.
func SaveBoardSnapshot(ctx context.Context, ph *ProjectHandle, panels domain.Panels, label string, ts time.Time) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	blob, err := json.Marshal(panels)
	if err != nil {
		return err
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, insertBoardSnapshotSQL, ts.UTC().Format(time.RFC3339Nano), label, blob)
	return err
}

// LatestBoardSnapshot returns the most recent snapshot or nil if none exists.
func LatestBoardSnapshot(ctx context.Context, ph *ProjectHandle) (domain.Panels, time.Time, error) {
	if ph == nil {
		return nil, time.Time{}, errors.New("nil ProjectHandle")
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = db.Close() }()
	var tsStr string
	var blob []byte
	err = db.QueryRowContext(ctx, selectLatestBoardSnapshotSQL).Scan(&tsStr, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	var panels domain.Panels
	if err := json.Unmarshal(blob, &panels); err != nil {
		return nil, time.Time{}, err
	}
	ts, perr := time.Parse(time.RFC3339Nano, tsStr)
	if perr != nil {
		return panels, time.Time{}, nil // return panels even if ts parse fails
	}
	return panels, ts, nil
}

// ListBoardSnapshots returns up to limit most recent snapshot descriptors.
func ListBoardSnapshots(ctx context.Context, ph *ProjectHandle, limit int) ([]SnapshotInfo, error) {
	if ph == nil {
		return nil, errors.New("nil ProjectHandle")
	}
	if limit <= 0 {
		limit = 50
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	rows, err := db.QueryContext(ctx, listBoardSnapshotsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []SnapshotInfo
	for rows.Next() {
		var tsStr string
		var label sql.NullString
		if err := rows.Scan(&tsStr, &label); err != nil {
			return nil, err
		}
		ts, _ := time.Parse(time.RFC3339Nano, tsStr)
		out = append(out, SnapshotInfo{TS: ts, Label: label.String})
	}
	return out, rows.Err()
}

// PruneBoardSnapshots keeps at most keepLast snapshots and deletes older ones.
func PruneBoardSnapshots(ctx context.Context, ph *ProjectHandle, keepLast int) (int64, error) {
	if ph == nil {
		return 0, errors.New("nil ProjectHandle")
	}
	if keepLast <= 0 {
		return 0, nil
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	res, err := db.ExecContext(ctx, pruneBoardSnapshotsSQL, keepLast)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
