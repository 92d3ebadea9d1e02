package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/cwbudde/algo-spatial/spatial/scene"
)

// trace records the ear result of every emitter per frame in SQLite.
type trace struct {
	conn *sqlx.DB
}

// traceRow is one emitter's ear result in one frame.
type traceRow struct {
	Frame      int64   `db:"frame"`
	Time       float64 `db:"time"`
	Emitter    string  `db:"emitter"`
	Name       string  `db:"name"`
	Distance   float64 `db:"distance"`
	Dot        float64 `db:"dot"`
	Pan        float64 `db:"pan"`
	Gain       float64 `db:"gain"`
	Frequency  float64 `db:"frequency"`
	ReverbSend float64 `db:"reverb_send"`
	Cached     bool    `db:"cached"`
}

// openTrace opens or creates a trace database at path. Existing frames
// are discarded.
func openTrace(path string) (*trace, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}

	t := &trace{conn: conn}
	if err := t.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate trace: %w", err)
	}

	return t, nil
}

func (t *trace) Close() error {
	return t.conn.Close()
}

func (t *trace) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS frames (
		frame INTEGER NOT NULL,
		time REAL NOT NULL,
		emitter TEXT NOT NULL,
		name TEXT NOT NULL,
		distance REAL NOT NULL,
		dot REAL NOT NULL,
		pan REAL NOT NULL,
		gain REAL NOT NULL,
		frequency REAL NOT NULL,
		reverb_send REAL NOT NULL,
		cached INTEGER NOT NULL,
		PRIMARY KEY (frame, emitter)
	);
	DELETE FROM frames;
	`
	_, err := t.conn.Exec(schema)
	return err
}

// record writes the last ear result of every emitter in sc.
func (t *trace) record(sc *scene.Scene) error {
	tx, err := t.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamed(`INSERT INTO frames
		(frame, time, emitter, name, distance, dot, pan, gain, frequency, reverb_send, cached)
		VALUES (:frame, :time, :emitter, :name, :distance, :dot, :pan, :gain, :frequency, :reverb_send, :cached)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range sc.Emitters() {
		r := e.Last()
		row := traceRow{
			Frame:      int64(sc.Frames()),
			Time:       sc.Elapsed(),
			Emitter:    e.ID.String(),
			Name:       e.Name,
			Distance:   r.Distance,
			Dot:        r.DotProduct,
			Pan:        r.Pan,
			Gain:       r.Gain,
			Frequency:  r.Frequency,
			ReverbSend: r.ReverbSend,
			Cached:     r.Cached,
		}
		if _, err := stmt.Exec(row); err != nil {
			return fmt.Errorf("insert frame %d emitter %s: %w", row.Frame, e.Name, err)
		}
	}

	return tx.Commit()
}

// rows returns every traced row of the named emitter in frame order.
func (t *trace) rows(name string) ([]traceRow, error) {
	var rows []traceRow
	err := t.conn.Select(&rows,
		"SELECT * FROM frames WHERE name = ? ORDER BY frame",
		name,
	)
	return rows, err
}

// frames returns the number of distinct frames recorded.
func (t *trace) frames() (int, error) {
	var n int
	err := t.conn.Get(&n, "SELECT COUNT(DISTINCT frame) FROM frames")
	return n, err
}
