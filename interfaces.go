package ninox

import "context"

// Authenticator resolves team and database names.
type Authenticator interface {
	// Auth resolves names to ids and makes the session ready.
	Auth(ctx context.Context, opts AuthOptions) error

	// Ready reports whether Auth has completed successfully.
	Ready() bool
}

// RecordReader provides record read operations.
type RecordReader interface {
	// ListRecords retrieves records matching filter.
	ListRecords(ctx context.Context, table string, filter Filter, opts ...RequestOption) ([]Record, error)

	// GetRecord retrieves a record by id.
	GetRecord(ctx context.Context, table string, id RecordID, opts ...RequestOption) (*Record, error)
}

// RecordWriter provides record write operations.
type RecordWriter interface {
	// SaveRecords creates or updates records.
	SaveRecords(ctx context.Context, table string, records []Record) (*SaveResult, error)

	// DeleteRecord deletes one record.
	DeleteRecord(ctx context.Context, table string, id RecordID) (bool, error)

	// DeleteRecords deletes records one at a time.
	DeleteRecords(ctx context.Context, table string, ids []RecordID) (bool, error)
}

// Querier evaluates expressions and scripts and downloads files.
type Querier interface {
	Query(ctx context.Context, expression string) (*Result, error)
	Exec(ctx context.Context, script string) (*Result, error)
	File(ctx context.Context, table string, recordID RecordID, name string) ([]byte, error)
}

// RecordReadWriter combines read and write operations.
type RecordReadWriter interface {
	RecordReader
	RecordWriter
}

// Session combines all operations.
type Session interface {
	Authenticator
	RecordReadWriter
	Querier
}

// Ensure Client implements all interfaces.
var (
	_ Authenticator    = (*Client)(nil)
	_ RecordReader     = (*Client)(nil)
	_ RecordWriter     = (*Client)(nil)
	_ RecordReadWriter = (*Client)(nil)
	_ Querier          = (*Client)(nil)
	_ Session          = (*Client)(nil)
)
