package ninox

import (
	"context"
	"net/http"
)

// ListRecords retrieves the records of table that match filter, in backend
// order. The maximum page size is requested in a single call; a truncated
// result is returned as is.
//
// Example:
//
//	records, err := client.ListRecords(ctx, "Customers",
//	    ninox.Filter{"City": "Berlin"},
//	    ninox.WithFields("Name", "Email"),
//	)
func (c *Client) ListRecords(ctx context.Context, table string, filter Filter, opts ...RequestOption) ([]Record, error) {
	s, err := c.readySession()
	if err != nil {
		return nil, err
	}
	reqConfig := newRequestConfig(opts)

	query, err := listQuery(filter)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, s, http.MethodGet, recordsPath(s, table), query, nil)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode, resp.Body)
	}

	var records []Record
	if err := decodeBody(resp, &records); err != nil {
		return nil, err
	}
	for i := range records {
		reqConfig.project(&records[i])
	}
	return records, nil
}

// GetRecord retrieves a single record by id. An unknown id surfaces as the
// backend's status error.
func (c *Client) GetRecord(ctx context.Context, table string, id RecordID, opts ...RequestOption) (*Record, error) {
	s, err := c.readySession()
	if err != nil {
		return nil, err
	}
	reqConfig := newRequestConfig(opts)

	resp, err := c.do(ctx, s, http.MethodGet, recordPath(s, table, id), "", nil)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode, resp.Body)
	}

	var record Record
	if err := decodeBody(resp, &record); err != nil {
		return nil, err
	}
	reqConfig.project(&record)
	return &record, nil
}

// SaveRecords creates records without an ID and updates records with one.
// Records are sent unmodified; the backend makes the distinction. The
// returned ids follow the order of records.
func (c *Client) SaveRecords(ctx context.Context, table string, records []Record) (*SaveResult, error) {
	s, err := c.readySession()
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}

	resp, err := c.do(ctx, s, http.MethodPost, recordsPath(s, table), "", records)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode, resp.Body)
	}

	var saved []struct {
		ID RecordID `json:"id"`
	}
	if err := decodeBody(resp, &saved); err != nil {
		return nil, err
	}

	result := &SaveResult{
		Success: resp.StatusCode == http.StatusOK,
		IDs:     make([]RecordID, 0, len(saved)),
	}
	for _, r := range saved {
		result.IDs = append(result.IDs, r.ID)
	}
	return result, nil
}

// DeleteRecord deletes one record. It returns true only if the backend
// answered 200; any other status also returns an error carrying it.
func (c *Client) DeleteRecord(ctx context.Context, table string, id RecordID) (bool, error) {
	s, err := c.readySession()
	if err != nil {
		return false, err
	}
	return c.deleteRecord(ctx, s, table, id)
}

func (c *Client) deleteRecord(ctx context.Context, s *session, table string, id RecordID) (bool, error) {
	resp, err := c.do(ctx, s, http.MethodDelete, recordPath(s, table, id), "", nil)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusOK {
		return false, statusError(resp.StatusCode, resp.Body)
	}
	return true, nil
}

// DeleteRecords deletes records one at a time, in order. Every id is
// attempted even after a failure; the result is true only if all deletes
// succeeded. Per-id errors are logged, not returned. Use DeleteRecord for
// per-id detail.
func (c *Client) DeleteRecords(ctx context.Context, table string, ids []RecordID) (bool, error) {
	s, err := c.readySession()
	if err != nil {
		return false, err
	}

	ok := true
	for _, id := range ids {
		deleted, err := c.deleteRecord(ctx, s, table, id)
		if err != nil {
			c.logger.WarnContext(ctx, "delete record failed",
				"table", table,
				"id", id.String(),
				"error", err,
			)
		}
		ok = ok && deleted
	}
	return ok, nil
}
