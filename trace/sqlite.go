package trace

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLiteWriter writes samples to a SQLite database. Samples are buffered and
// inserted in batches. Each writer stores its samples under its own run ID.
type SQLiteWriter struct {
	*sql.DB

	statement *sql.Stmt
	path      string
	runID     string
	batchSize int
	buffer    []Sample
}

// NewSQLiteWriter creates a writer for the database at path. An empty path
// creates a database named after the run ID in the working directory. The
// buffered samples are flushed when the program exits through atexit.
func NewSQLiteWriter(path string) *SQLiteWriter {
	w := &SQLiteWriter{
		path:      path,
		runID:     xid.New().String(),
		batchSize: 10000,
	}

	atexit.Register(func() { _ = w.Flush() })

	return w
}

// RunID returns the ID under which the samples are stored.
func (w *SQLiteWriter) RunID() string {
	return w.runID
}

// Path returns the database file.
func (w *SQLiteWriter) Path() string {
	return w.path
}

// Init opens the database and creates the tables.
func (w *SQLiteWriter) Init() error {
	if w.path == "" {
		w.path = "ambabridge_trace_" + w.runID + ".sqlite3"
	}

	db, err := sql.Open("sqlite3", w.path)
	if err != nil {
		return fmt.Errorf("open trace database %s: %w", w.path, err)
	}

	w.DB = db

	if err := w.createTables(); err != nil {
		return err
	}

	w.statement, err = w.Prepare(
		`INSERT INTO signal_change VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Trace is collected in database: %s\n", w.path)

	return nil
}

func (w *SQLiteWriter) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signal_change
		(
			run_id TEXT    NOT NULL,
			cycle  INTEGER NOT NULL,
			time   REAL    NOT NULL,
			name   TEXT    NOT NULL,
			width  INTEGER NOT NULL,
			value  INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS signal_change_name_index
			ON signal_change (name);`,
		`CREATE INDEX IF NOT EXISTS signal_change_cycle_index
			ON signal_change (cycle);`,
		`CREATE TABLE IF NOT EXISTS run
		(
			run_id TEXT NOT NULL PRIMARY KEY
		);`,
	}

	for _, stmt := range stmts {
		if _, err := w.Exec(stmt); err != nil {
			return fmt.Errorf("create trace tables: %w", err)
		}
	}

	if _, err := w.Exec(`INSERT INTO run VALUES (?)`, w.runID); err != nil {
		return fmt.Errorf("register run: %w", err)
	}

	return nil
}

// Record buffers a sample and inserts the buffer once it is full.
func (w *SQLiteWriter) Record(s Sample) {
	w.buffer = append(w.buffer, s)

	if len(w.buffer) >= w.batchSize {
		if err := w.Flush(); err != nil {
			panic(err)
		}
	}
}

// Flush inserts all buffered samples in one transaction.
func (w *SQLiteWriter) Flush() error {
	if len(w.buffer) == 0 {
		return nil
	}

	if w.DB == nil {
		return errors.New("trace database is not initialized")
	}

	tx, err := w.Begin()
	if err != nil {
		return fmt.Errorf("begin trace transaction: %w", err)
	}

	stmt := tx.Stmt(w.statement)
	for _, s := range w.buffer {
		// SQLite integers are signed; the bit pattern is kept.
		_, err := stmt.Exec(w.runID, int64(s.Cycle), float64(s.Time), s.Name,
			s.Width, int64(s.Value))
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert sample %s@%d: %w", s.Name, s.Cycle, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit trace transaction: %w", err)
	}

	w.buffer = nil

	return nil
}

// Close flushes the buffer and closes the database.
func (w *SQLiteWriter) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}

	if w.DB == nil {
		return nil
	}

	return w.DB.Close()
}
