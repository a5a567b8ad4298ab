/*
 * store.go, part of molgraph.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package store keeps a ledger of reaction classifications in a SQLite database.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rmera/molgraph/rxn"
)

//go:embed schema.sql
var schemaSQL string

//Store is the classification ledger.
type Store struct {
	db *sql.DB
}

//Open creates or opens the SQLite database at path and applies the schema.
//Use ":memory:" for a database that only lives as long as the Store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	//SQLite takes a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	for _, pragma := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA foreign_keys = ON"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

//Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

//Record is a stored classification. Error is empty for candidates that were classified.
type Record struct {
	CandidateID uuid.UUID
	RunID       uuid.UUID
	Reaction    string
	Class       string
	Reactants   []string
	Products    []string
	Sites       []int
	Error       string
}

//NewRecords pairs the candidates of a batch with their results or errors, in the order of cands.
func NewRecords(run uuid.UUID, cands []rxn.Candidate, results []rxn.Result, failed map[uuid.UUID]error) []Record {
	byid := make(map[uuid.UUID]rxn.Result, len(results))
	for _, r := range results {
		byid[r.CandidateID] = r
	}
	ret := make([]Record, 0, len(cands))
	for _, c := range cands {
		rec := Record{CandidateID: c.ID, RunID: run, Reaction: c.String()}
		if err, ok := failed[c.ID]; ok {
			rec.Class = rxn.Unclassified.String()
			rec.Error = err.Error()
		} else if r, ok := byid[c.ID]; ok {
			rec.Class = r.Class.String()
			rec.Reactants = r.Reactants
			rec.Products = r.Products
			rec.Sites = r.Sites
		} else {
			continue
		}
		ret = append(ret, rec)
	}
	return ret
}

func marshal(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

//SaveRun stores a classification run read from source, with all its records, in one transaction.
func (s *Store) SaveRun(ctx context.Context, run uuid.UUID, source string, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, "INSERT INTO runs (id, source, created_at) VALUES (?, ?, ?)",
		run.String(), source, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert run %s: %w", run, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO results
		(candidate_id, run_id, reaction, class, reactants, products, sites, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, r := range records {
		var cols [3]string
		for i, v := range []interface{}{r.Reactants, r.Products, r.Sites} {
			if cols[i], err = marshal(v); err != nil {
				return fmt.Errorf("candidate %s: %w", r.CandidateID, err)
			}
		}
		if _, err := stmt.ExecContext(ctx, r.CandidateID.String(), run.String(), r.Reaction, r.Class, cols[0], cols[1], cols[2], r.Error); err != nil {
			return fmt.Errorf("insert candidate %s: %w", r.CandidateID, err)
		}
	}
	return tx.Commit()
}

//Records returns the records of a run, ordered as they were saved.
func (s *Store) Records(ctx context.Context, run uuid.UUID) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT candidate_id, reaction, class, reactants, products, sites, error
		FROM results WHERE run_id = ? ORDER BY rowid`, run.String())
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", run, err)
	}
	defer rows.Close()
	var ret []Record
	for rows.Next() {
		var id, reac, prod, sites string
		r := Record{RunID: run}
		if err := rows.Scan(&id, &r.Reaction, &r.Class, &reac, &prod, &sites, &r.Error); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if r.CandidateID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("bad candidate id %q: %w", id, err)
		}
		if err := json.Unmarshal([]byte(reac), &r.Reactants); err != nil {
			return nil, fmt.Errorf("candidate %s reactants: %w", id, err)
		}
		if err := json.Unmarshal([]byte(prod), &r.Products); err != nil {
			return nil, fmt.Errorf("candidate %s products: %w", id, err)
		}
		if err := json.Unmarshal([]byte(sites), &r.Sites); err != nil {
			return nil, fmt.Errorf("candidate %s sites: %w", id, err)
		}
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

//ClassCounts returns how many candidates of a run fell in each class. Failed candidates count as unclassified.
func (s *Store) ClassCounts(ctx context.Context, run uuid.UUID) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT class, COUNT(*) FROM results WHERE run_id = ? GROUP BY class", run.String())
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", run, err)
	}
	defer rows.Close()
	ret := make(map[string]int)
	for rows.Next() {
		var class string
		var n int
		if err := rows.Scan(&class, &n); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ret[class] = n
	}
	return ret, rows.Err()
}
