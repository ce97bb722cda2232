package ninox

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Auth resolves the team and database names to ids and makes the client
// ready. Missing inputs fail with ErrConfiguration before any request.
//
// The team list is fetched first and searched by exact name; the database
// list of the matching team is fetched next and searched the same way. A
// 401 on the team list fails with ErrAuthentication, a missing name with
// ErrNotFound. On failure the previous resolution, if any, stays in effect;
// only the cached team and database lists are refreshed.
func (c *Client) Auth(ctx context.Context, opts AuthOptions) error {
	switch {
	case opts.AuthKey == "":
		return configurationError("auth key")
	case opts.Team == "":
		return configurationError("team")
	case opts.Database == "":
		return configurationError("database")
	}

	next := &session{
		baseURL: strings.TrimRight(opts.URI, "/"),
		version: opts.Version,
		authKey: opts.AuthKey,
	}
	if next.baseURL == "" {
		next.baseURL = DefaultBaseURL
	}
	if next.version == "" {
		next.version = DefaultVersion
	}

	teams, err := c.fetchTeams(ctx, next)
	if err != nil {
		return err
	}
	next.teams = teams
	c.cacheLists(teams, nil)

	team, ok := FindTeam(teams, opts.Team)
	if !ok {
		return notFoundError(ResourceTeam, opts.Team)
	}
	next.teamID = team.ID

	databases, err := c.fetchDatabases(ctx, next)
	if err != nil {
		return err
	}
	next.databases = databases
	c.cacheLists(teams, databases)

	database, ok := FindDatabase(databases, opts.Database)
	if !ok {
		return notFoundError(ResourceDatabase, opts.Database)
	}
	next.databaseID = database.ID

	c.state.Store(next)
	c.logger.DebugContext(ctx, "session ready",
		"team_id", next.teamID,
		"database_id", next.databaseID,
	)
	return nil
}

// FindTeam returns the first team named exactly name.
func FindTeam(teams []Team, name string) (Team, bool) {
	for _, t := range teams {
		if t.Name == name {
			return t, true
		}
	}
	return Team{}, false
}

// FindDatabase returns the first database named exactly name.
func FindDatabase(databases []Database, name string) (Database, bool) {
	for _, d := range databases {
		if d.Name == name {
			return d, true
		}
	}
	return Database{}, false
}

func (c *Client) fetchTeams(ctx context.Context, s *session) ([]Team, error) {
	resp, err := c.do(ctx, s, http.MethodGet, "/teams/", "", nil)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, &Error{
			Code:       CodeAuthentication,
			Message:    "invalid auth key",
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
		}
	default:
		return nil, statusError(resp.StatusCode, resp.Body)
	}

	var teams []Team
	if err := decodeBody(resp, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *Client) fetchDatabases(ctx context.Context, s *session) ([]Database, error) {
	path := "/teams/" + url.PathEscape(s.teamID) + "/databases"
	resp, err := c.do(ctx, s, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, resp.Body)
	}

	var databases []Database
	if err := decodeBody(resp, &databases); err != nil {
		return nil, err
	}
	return databases, nil
}

// cacheLists publishes freshly fetched lists without touching the resolved
// ids. Both lists are replaced together; a nil databases clears the cached
// list so it never describes a different team than teams.
func (c *Client) cacheLists(teams []Team, databases []Database) {
	next := &session{}
	if prev := c.state.Load(); prev != nil {
		*next = *prev
	}
	next.teams = teams
	next.databases = databases
	c.state.Store(next)
}
