// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"math"

	"github.com/holiman/uint256"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/multirewards/events"
	"github.com/vechain/multirewards/thor"
)

const insertEventQuery = "INSERT OR REPLACE INTO event(seq, opNumber, eventIndex, time, name, address, account, counterparty, token, amount, duration, flag) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);"

type LogDB struct {
	path          string
	db            *sql.DB
	stmtCache     *stmtCache
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path+"?_journal=wal")
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// single connection keeps in-memory dbs alive and serializes writes
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		stmtCache:     newStmtCache(db),
		driverVersion: driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// NewBatch prepares the events of one operation for insertion.
func (db *LogDB) NewBatch(opNum uint32, time uint64) *Batch {
	return &Batch{
		db:    db,
		opNum: opNum,
		time:  time,
	}
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT * FROM event ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var args []any
	stmt := "SELECT * FROM event WHERE 1"
	if filter.Range != nil {
		if filter.Range.Unit == Time {
			args = append(args, filter.Range.From)
			stmt += " AND time >= ? "
			if filter.Range.To >= filter.Range.From {
				args = append(args, filter.Range.To)
				stmt += " AND time <= ? "
			}
		} else {
			from, to := clampOp(filter.Range.From), clampOp(filter.Range.To)
			args = append(args, int64(newSequence(from, 0)))
			stmt += " AND seq >= ? "
			if filter.Range.To >= filter.Range.From {
				args = append(args, int64(newSequence(to, math.MaxInt32)))
				stmt += " AND seq <= ? "
			}
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			stmt += " AND address = ? "
		}
		if criteria.Name != nil {
			args = append(args, *criteria.Name)
			stmt += " AND name = ? "
		}
		if criteria.Account != nil {
			args = append(args, criteria.Account.Bytes())
			stmt += " AND account = ? "
		}
		if criteria.Token != nil {
			args = append(args, criteria.Token.Bytes())
			stmt += " AND token = ? "
		}
		stmt += ")"
		if i == len(filter.CriteriaSet)-1 {
			stmt += ")"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func clampOp(v uint64) uint32 {
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

func (db *LogDB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	stmt, err := db.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evs []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq          int64
			opNum        uint32
			index        uint32
			time         uint64
			name         string
			address      []byte
			account      []byte
			counterparty []byte
			token        []byte
			amount       []byte
			duration     uint64
			flag         bool
		)
		if err := rows.Scan(
			&seq,
			&opNum,
			&index,
			&time,
			&name,
			&address,
			&account,
			&counterparty,
			&token,
			&amount,
			&duration,
			&flag,
		); err != nil {
			return nil, err
		}
		ev := &Event{
			OpNumber:     opNum,
			Index:        index,
			Time:         time,
			Name:         name,
			Address:      thor.BytesToAddress(address),
			Account:      thor.BytesToAddress(account),
			Counterparty: thor.BytesToAddress(counterparty),
			Token:        thor.BytesToAddress(token),
			Duration:     duration,
			Flag:         flag,
		}
		if amount != nil {
			ev.Amount = new(uint256.Int).SetBytes(amount)
		}
		evs = append(evs, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return evs, nil
}

// Batch holds the events of one operation.
type Batch struct {
	db     *LogDB
	opNum  uint32
	time   uint64
	events []*Event
}

// Insert appends events in emission order.
func (b *Batch) Insert(evs []*events.Event) *Batch {
	for _, ev := range evs {
		b.events = append(b.events, newEvent(b.opNum, uint32(len(b.events)), b.time, ev))
	}
	return b
}

// Events returns the events pending in the batch.
func (b *Batch) Events() []*Event {
	return b.events
}

func (b *Batch) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := b.db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func addressValue(addr thor.Address) []byte {
	if addr.IsZero() {
		return nil
	}
	return addr.Bytes()
}

func amountValue(amount *uint256.Int) []byte {
	if amount == nil {
		return nil
	}
	return amount.Bytes()
}

// Commit writes the batch in one sql transaction.
func (b *Batch) Commit() error {
	if len(b.events) == 0 {
		return nil
	}
	insert, err := b.db.stmtCache.Prepare(insertEventQuery)
	if err != nil {
		return err
	}
	return b.execInTx(func(tx *sql.Tx) error {
		stmt := tx.Stmt(insert)
		for _, ev := range b.events {
			if _, err := stmt.Exec(
				int64(newSequence(ev.OpNumber, ev.Index)),
				ev.OpNumber,
				ev.Index,
				ev.Time,
				ev.Name,
				ev.Address.Bytes(),
				addressValue(ev.Account),
				addressValue(ev.Counterparty),
				addressValue(ev.Token),
				amountValue(ev.Amount),
				ev.Duration,
				ev.Flag,
			); err != nil {
				return errors.Wrapf(err, "insert event %v/%v", ev.OpNumber, ev.Index)
			}
		}
		return nil
	})
}
