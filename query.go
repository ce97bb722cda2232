package ninox

import (
	"context"
	"net/http"
	"net/url"
)

// Query evaluates a query expression against the database and returns the
// computed value.
//
// Example:
//
//	result, err := client.Query(ctx, `first(select Customers where Name = "Acme").Id`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if id, ok := result.Text(); ok {
//	    fmt.Println(id)
//	}
func (c *Client) Query(ctx context.Context, expression string) (*Result, error) {
	s, err := c.readySession()
	if err != nil {
		return nil, err
	}

	query := "query=" + encodeComponent(expression)
	resp, err := c.do(ctx, s, http.MethodGet, databasePath(s)+"/query", query, nil)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode, resp.Body)
	}
	return ParseResult(resp.Body), nil
}

// Exec runs a script against the database and returns its value.
func (c *Client) Exec(ctx context.Context, script string) (*Result, error) {
	s, err := c.readySession()
	if err != nil {
		return nil, err
	}

	body := struct {
		Query string `json:"query"`
	}{Query: script}
	resp, err := c.do(ctx, s, http.MethodPost, databasePath(s)+"/exec", "", body)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode, resp.Body)
	}
	return ParseResult(resp.Body), nil
}

// File downloads a file attached to a record. The whole payload is held in
// memory.
func (c *Client) File(ctx context.Context, table string, recordID RecordID, name string) ([]byte, error) {
	s, err := c.readySession()
	if err != nil {
		return nil, err
	}

	path := recordPath(s, table, recordID) + "/files/" + url.PathEscape(name)
	resp, err := c.do(ctx, s, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode, resp.Body)
	}
	return resp.Body, nil
}
