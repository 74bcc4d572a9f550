package analysis

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/tebeka/atexit"
)

// CSVBackend is a PerfLogger that writes occupancy entries to a CSV file.
type CSVBackend struct {
	dbFile    *os.File
	csvWriter *csv.Writer
}

// NewCSVBackend creates a new CSVBackend writing to filename + ".csv".
func NewCSVBackend(filename string) *CSVBackend {
	p := &CSVBackend{}

	var err error
	p.dbFile, err = os.OpenFile(filename+".csv",
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		panic(err)
	}

	p.csvWriter = csv.NewWriter(p.dbFile)

	header := []string{"Start", "End", "Where", "What", "EntryType", "Value", "Unit"}
	err = p.csvWriter.Write(header)
	if err != nil {
		panic(err)
	}

	atexit.Register(func() { p.Flush() })

	return p
}

// AddDataEntry adds a data entry to the CSV file.
func (p *CSVBackend) AddDataEntry(entry OccupancyEntry) {
	err := p.csvWriter.Write([]string{
		fmt.Sprintf("%.10f", entry.Start),
		fmt.Sprintf("%.10f", entry.End),
		entry.Where,
		entry.What,
		entry.EntryType,
		fmt.Sprintf("%.10f", entry.Value),
		entry.Unit,
	})
	if err != nil {
		panic(err)
	}
}

// Flush flushes the CSV writer.
func (p *CSVBackend) Flush() {
	p.csvWriter.Flush()
}

// SQLiteBackend is a PerfLogger that writes occupancy entries to a SQLite
// database, in batches.
type SQLiteBackend struct {
	*sql.DB
	statement *sql.Stmt

	batchSize int
	entries   []OccupancyEntry
}

// NewSQLiteBackend creates a new SQLiteBackend writing to filename +
// ".sqlite3". An existing database with the same name is replaced.
func NewSQLiteBackend(filename string) *SQLiteBackend {
	p := &SQLiteBackend{
		batchSize: 50000,
	}

	p.createDatabase(filename + ".sqlite3")
	p.prepareStatement()

	atexit.Register(func() {
		p.Flush()
		err := p.Close()
		if err != nil {
			panic(err)
		}
	})

	return p
}

// AddDataEntry adds a data entry to the database.
func (p *SQLiteBackend) AddDataEntry(entry OccupancyEntry) {
	p.entries = append(p.entries, entry)
	if len(p.entries) >= p.batchSize {
		p.Flush()
	}
}

// Flush writes all buffered entries into the database.
func (p *SQLiteBackend) Flush() {
	if len(p.entries) == 0 {
		return
	}

	tx, err := p.Begin()
	if err != nil {
		panic(err)
	}

	defer func() {
		innerErr := tx.Commit()
		if innerErr != nil {
			panic(innerErr)
		}
	}()

	for _, entry := range p.entries {
		_, err = tx.Stmt(p.statement).Exec(
			entry.Start,
			entry.End,
			entry.Where,
			entry.What,
			entry.EntryType,
			entry.Value,
			entry.Unit,
		)
		if err != nil {
			panic(err)
		}
	}

	p.entries = p.entries[:0]
}

func (p *SQLiteBackend) createDatabase(dbFilename string) {
	var err error

	_, err = os.Stat(dbFilename)
	if err == nil {
		err = os.Remove(dbFilename)
		if err != nil {
			panic(err)
		}
	}

	p.DB, err = sql.Open("sqlite3", dbFilename)
	if err != nil {
		panic(err)
	}

	p.createTable()
}

func (p *SQLiteBackend) createTable() {
	sqlStmt := `
	create table occupancy (
		id integer not null primary key,
		"start" real,
		"end" real,
		location text,
		what text,
		entry_type text,
		value real,
		unit text
	);
	`

	_, err := p.Exec(sqlStmt)
	if err != nil {
		panic(err)
	}
}

func (p *SQLiteBackend) prepareStatement() {
	var err error

	p.statement, err = p.Prepare(`
		insert into occupancy
		("start", "end", location, what, entry_type, value, unit)
		values (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		panic(err)
	}
}
