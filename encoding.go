package ninox

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// encodeComponent escapes s for use as a query value, encoding spaces as
// %20 rather than '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// buildURL joins base, version, path and an already-encoded query.
// Format: <base>/v<version><path>[?<query>]
func buildURL(base, version, path, query string) string {
	u := base + "/v" + version + path
	if query != "" {
		u += "?" + query
	}
	return u
}

// databasePath returns the path of the resolved database.
func databasePath(s *session) string {
	return "/teams/" + url.PathEscape(s.teamID) + "/databases/" + url.PathEscape(s.databaseID)
}

// recordsPath returns the records collection path of a table.
func recordsPath(s *session, table string) string {
	return databasePath(s) + "/tables/" + url.PathEscape(table) + "/records"
}

// recordPath returns the path of a single record.
func recordPath(s *session, table string, id RecordID) string {
	return recordsPath(s, table) + "/" + url.PathEscape(id.String())
}

// listQuery builds the query string for ListRecords.
// The filter is only sent when non-empty.
func listQuery(filter Filter) (string, error) {
	size := strconv.Itoa(MaxPageSize)
	q := "pages=" + size + "&perPage=" + size
	if len(filter) == 0 {
		return q, nil
	}

	data, err := json.Marshal(struct {
		Fields Filter `json:"fields"`
	}{Fields: filter})
	if err != nil {
		return "", fmt.Errorf("encode filter: %w", err)
	}
	return q + "&filters=" + encodeComponent(string(data)), nil
}
