package ninox

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ninoxdb/ninox-go/transport/mock"
)

const (
	testBase    = "https://api.ninoxdb.de/v1"
	testKey     = "secret-key"
	testTeam    = "Acme"
	testTeamID  = "t1"
	testDB      = "CRM"
	testDBID    = "d1"
	testRecords = testBase + "/teams/t1/databases/d1/tables/Customers/records"
)

func testAuthOptions() AuthOptions {
	return AuthOptions{AuthKey: testKey, Team: testTeam, Database: testDB}
}

// newTestClient returns an unresolved client backed by a mock transport.
func newTestClient(t *testing.T) (*Client, *mock.Transport) {
	t.Helper()
	m := mock.New(mock.Config{})
	client, err := New(WithTransport(m))
	require.NoError(t, err)
	return client, m
}

// stubResolution registers team and database lists matching testAuthOptions.
func stubResolution(m *mock.Transport) {
	m.On(http.MethodGet, testBase+"/teams/").ReturnJSON(http.StatusOK, []Team{
		{ID: "t0", Name: "Other"},
		{ID: testTeamID, Name: testTeam},
	})
	m.On(http.MethodGet, testBase+"/teams/t1/databases").ReturnJSON(http.StatusOK, []Database{
		{ID: testDBID, Name: testDB},
	})
}

// readyClient returns a resolved client with its recorded calls cleared.
func readyClient(t *testing.T) (*Client, *mock.Transport) {
	t.Helper()
	client, m := newTestClient(t)
	stubResolution(m)
	require.NoError(t, client.Auth(context.Background(), testAuthOptions()))
	m.Reset()
	return client, m
}
