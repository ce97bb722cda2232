package ninox

import "context"

// Table is a handle bound to a table name. It forwards to Client methods.
type Table struct {
	Name   string
	Client *Client
}

// Table returns a handle for the named table.
func (c *Client) Table(name string) Table { return Table{Name: name, Client: c} }

// List retrieves records matching filter.
func (t Table) List(ctx context.Context, filter Filter, opts ...RequestOption) ([]Record, error) {
	return t.Client.ListRecords(ctx, t.Name, filter, opts...)
}

// Get retrieves a record by id.
func (t Table) Get(ctx context.Context, id RecordID, opts ...RequestOption) (*Record, error) {
	return t.Client.GetRecord(ctx, t.Name, id, opts...)
}

// Save creates or updates records.
func (t Table) Save(ctx context.Context, records ...Record) (*SaveResult, error) {
	return t.Client.SaveRecords(ctx, t.Name, records)
}

// Delete deletes one record.
func (t Table) Delete(ctx context.Context, id RecordID) (bool, error) {
	return t.Client.DeleteRecord(ctx, t.Name, id)
}

// DeleteAll deletes records one at a time.
func (t Table) DeleteAll(ctx context.Context, ids ...RecordID) (bool, error) {
	return t.Client.DeleteRecords(ctx, t.Name, ids)
}

// File downloads a file attached to a record.
func (t Table) File(ctx context.Context, recordID RecordID, name string) ([]byte, error) {
	return t.Client.File(ctx, t.Name, recordID, name)
}
