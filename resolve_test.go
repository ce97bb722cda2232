package ninox

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninoxdb/ninox-go/transport/mock"
)

func TestAuth_RequiresInputs(t *testing.T) {
	tests := []struct {
		name string
		opts AuthOptions
	}{
		{"missing auth key", AuthOptions{Team: testTeam, Database: testDB}},
		{"missing team", AuthOptions{AuthKey: testKey, Database: testDB}},
		{"missing database", AuthOptions{AuthKey: testKey, Team: testTeam}},
		{"empty", AuthOptions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, m := newTestClient(t)
			stubResolution(m)

			err := client.Auth(context.Background(), tt.opts)
			require.Error(t, err)
			assert.True(t, IsConfiguration(err))
			assert.Zero(t, m.CallCount(), "no request may be sent")
			assert.False(t, client.Ready())
		})
	}
}

func TestAuth_Success(t *testing.T) {
	client, m := newTestClient(t)
	stubResolution(m)

	require.NoError(t, client.Auth(context.Background(), testAuthOptions()))

	assert.True(t, client.Ready())
	assert.Equal(t, testTeamID, client.TeamID())
	assert.Equal(t, testDBID, client.DatabaseID())
	assert.Len(t, client.Teams(), 2)
	assert.Equal(t, []Database{{ID: testDBID, Name: testDB}}, client.Databases())

	require.Len(t, m.Calls, 2)
	assert.Equal(t, testBase+"/teams/", m.Calls[0].URL)
	assert.Equal(t, testBase+"/teams/t1/databases", m.Calls[1].URL)
	for _, call := range m.Calls {
		assert.Equal(t, http.MethodGet, call.Method)
		assert.Equal(t, "Bearer "+testKey, call.Header.Get("Authorization"))
		assert.Equal(t, "application/json", call.Header.Get("Content-Type"))
		assert.NotEmpty(t, call.ID)
	}
}

func TestAuth_CustomEndpoint(t *testing.T) {
	client, m := newTestClient(t)
	m.On(http.MethodGet, "https://ninox.example.com/v2/teams/").
		ReturnJSON(http.StatusOK, []Team{{ID: "x", Name: testTeam}})
	m.On(http.MethodGet, "https://ninox.example.com/v2/teams/x/databases").
		ReturnJSON(http.StatusOK, []Database{{ID: "y", Name: testDB}})

	opts := testAuthOptions()
	opts.URI = "https://ninox.example.com/"
	opts.Version = "2"
	require.NoError(t, client.Auth(context.Background(), opts))
	assert.Equal(t, "x", client.TeamID())
	assert.Equal(t, "y", client.DatabaseID())
}

func TestAuth_TeamNotFound(t *testing.T) {
	client, m := newTestClient(t)
	m.On(http.MethodGet, testBase+"/teams/").ReturnJSON(http.StatusOK, []Team{{ID: "t0", Name: "Other"}})

	err := client.Auth(context.Background(), testAuthOptions())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, ResourceTeam, e.Resource)

	assert.Equal(t, 1, m.CallCount(), "database list must not be fetched")
	assert.False(t, client.Ready())
	assert.Empty(t, client.TeamID())
	assert.Empty(t, client.DatabaseID())
	assert.Len(t, client.Teams(), 1, "team list stays cached")
}

func TestAuth_TeamNameIsCaseSensitive(t *testing.T) {
	client, m := newTestClient(t)
	stubResolution(m)

	opts := testAuthOptions()
	opts.Team = "acme"
	err := client.Auth(context.Background(), opts)
	assert.True(t, IsNotFound(err))
}

func TestAuth_DatabaseNotFound(t *testing.T) {
	client, m := newTestClient(t)
	stubResolution(m)

	opts := testAuthOptions()
	opts.Database = "Missing"
	err := client.Auth(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, ResourceDatabase, e.Resource)
	assert.False(t, client.Ready())
	assert.Empty(t, client.TeamID())
}

func TestAuth_Unauthorized(t *testing.T) {
	client, m := newTestClient(t)
	m.On(http.MethodGet, testBase+"/teams/").Return(http.StatusUnauthorized, []byte(`{"message":"unauthorized"}`))

	err := client.Auth(context.Background(), testAuthOptions())
	assert.True(t, IsAuthentication(err))
	assert.False(t, IsTransport(err))
	assert.Equal(t, 1, m.CallCount())
}

func TestAuth_StatusErrors(t *testing.T) {
	t.Run("team list", func(t *testing.T) {
		client, m := newTestClient(t)
		m.On(http.MethodGet, testBase+"/teams/").Return(http.StatusInternalServerError, []byte("boom"))

		err := client.Auth(context.Background(), testAuthOptions())
		assert.True(t, IsTransport(err))
		assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	})

	t.Run("database list", func(t *testing.T) {
		client, m := newTestClient(t)
		m.On(http.MethodGet, testBase+"/teams/").ReturnJSON(http.StatusOK, []Team{{ID: testTeamID, Name: testTeam}})
		m.On(http.MethodGet, testBase+"/teams/t1/databases").Return(http.StatusForbidden, nil)

		err := client.Auth(context.Background(), testAuthOptions())
		assert.True(t, IsTransport(err))
		assert.Equal(t, http.StatusForbidden, StatusCode(err))
		assert.False(t, client.Ready())
	})

	t.Run("malformed body", func(t *testing.T) {
		client, m := newTestClient(t)
		m.On(http.MethodGet, testBase+"/teams/").Return(http.StatusOK, []byte("<html>"))

		err := client.Auth(context.Background(), testAuthOptions())
		assert.True(t, IsTransport(err))
	})
}

func TestAuth_NetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	client, m := newTestClient(t)
	m.On(http.MethodGet, testBase+"/teams/").ReturnError(cause)

	err := client.Auth(context.Background(), testAuthOptions())
	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, cause)
	assert.Zero(t, StatusCode(err))
}

func TestAuth_Reauthenticate(t *testing.T) {
	client, m := readyClient(t)
	m.On(http.MethodGet, testBase+"/teams/t1/databases").ReturnJSON(http.StatusOK, []Database{
		{ID: testDBID, Name: testDB},
		{ID: "d2", Name: "Billing"},
	})

	t.Run("replaces resolution", func(t *testing.T) {
		opts := testAuthOptions()
		opts.Database = "Billing"
		require.NoError(t, client.Auth(context.Background(), opts))
		assert.Equal(t, "d2", client.DatabaseID())
		assert.Len(t, client.Databases(), 2)
	})

	t.Run("failure keeps previous ids", func(t *testing.T) {
		opts := testAuthOptions()
		opts.Database = "Missing"
		err := client.Auth(context.Background(), opts)
		assert.True(t, IsNotFound(err))
		assert.True(t, client.Ready())
		assert.Equal(t, testTeamID, client.TeamID())
		assert.Equal(t, "d2", client.DatabaseID())
	})
}

func TestAuth_FailedReauthClearsStaleDatabases(t *testing.T) {
	client, m := readyClient(t)
	require.Equal(t, []Database{{ID: testDBID, Name: testDB}}, client.Databases())

	m.On(http.MethodGet, testBase+"/teams/").ReturnJSON(http.StatusOK, []Team{{ID: "t9", Name: "Other"}})
	m.On(http.MethodGet, testBase+"/teams/t9/databases").Return(http.StatusInternalServerError, []byte(`oops`))

	opts := testAuthOptions()
	opts.Team = "Other"
	err := client.Auth(context.Background(), opts)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))

	assert.Equal(t, []Team{{ID: "t9", Name: "Other"}}, client.Teams())
	assert.Empty(t, client.Databases(), "databases of the previous team are dropped")
	assert.Equal(t, testTeamID, client.TeamID(), "previous resolution stays in effect")
	assert.Equal(t, testDBID, client.DatabaseID())
}

func TestFindTeam(t *testing.T) {
	teams := []Team{
		{ID: "1", Name: "Acme"},
		{ID: "2", Name: "Acme"},
		{ID: "3", Name: "acme"},
	}

	team, ok := FindTeam(teams, "Acme")
	require.True(t, ok)
	assert.Equal(t, "1", team.ID, "first match wins")

	team, ok = FindTeam(teams, "acme")
	require.True(t, ok)
	assert.Equal(t, "3", team.ID)

	_, ok = FindTeam(teams, "ACME")
	assert.False(t, ok)

	_, ok = FindTeam(nil, "Acme")
	assert.False(t, ok)
}

func TestFindDatabase(t *testing.T) {
	databases := []Database{{ID: "a", Name: "CRM"}, {ID: "b", Name: "Billing"}}

	db, ok := FindDatabase(databases, "Billing")
	require.True(t, ok)
	assert.Equal(t, "b", db.ID)

	_, ok = FindDatabase(databases, "crm")
	assert.False(t, ok)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(WithTimeout(-1))
	assert.Error(t, err)

	assert.Panics(t, func() { MustNew(WithTimeout(-1)) })
	assert.NotPanics(t, func() { MustNew(WithTransport(mock.New(mock.Config{}))) })
}
