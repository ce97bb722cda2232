package ninox

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDatabase = testBase + "/teams/t1/databases/d1"

func TestQuery(t *testing.T) {
	ctx := context.Background()
	client, m := readyClient(t)
	m.On(http.MethodGet, testDatabase+"/query").Return(http.StatusOK, []byte(`"A6"`))

	result, err := client.Query(ctx, "select Usage[Customer = 32]")
	require.NoError(t, err)

	text, ok := result.Text()
	require.True(t, ok)
	assert.Equal(t, "A6", text)

	require.Equal(t, 1, m.CallCount())
	assert.Equal(t, http.MethodGet, m.Calls[0].Method)
	assert.Equal(t, testDatabase+"/query?query=select%20Usage%5BCustomer%20%3D%2032%5D", m.Calls[0].URL)
}

func TestQuery_StatusError(t *testing.T) {
	client, m := readyClient(t)
	m.On(http.MethodGet, testDatabase+"/query").Return(http.StatusBadRequest, []byte(`{"message":"syntax error"}`))

	_, err := client.Query(context.Background(), "select (")
	assert.True(t, IsTransport(err))
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
}

func TestExec(t *testing.T) {
	client, m := readyClient(t)
	m.On(http.MethodPost, testDatabase+"/exec").Return(http.StatusOK, []byte(`[1, 2, 3]`))

	result, err := client.Exec(context.Background(), `let x := 1; x + 1`)
	require.NoError(t, err)
	assert.Equal(t, KindList, result.Kind)

	items, ok := result.List()
	require.True(t, ok)
	assert.Len(t, items, 3)

	assert.JSONEq(t, `{"query":"let x := 1; x + 1"}`, string(m.Calls[0].Body))
	assert.Equal(t, "application/json", m.Calls[0].Header.Get("Content-Type"))
}

func TestFile(t *testing.T) {
	client, m := readyClient(t)
	payload := []byte{0x25, 0x50, 0x44, 0x46}
	m.On(http.MethodGet, testRecords+"/3/files/invoice%201.pdf").Return(http.StatusOK, payload)

	data, err := client.File(context.Background(), "Customers", "3", "invoice 1.pdf")
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	data, err = client.Table("Customers").File(context.Background(), "3", "missing.pdf")
	assert.Nil(t, data)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}
