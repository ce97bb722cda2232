// Package mock provides a recording transport for testing code built on the
// Ninox client without network access.
//
// Configure responses per method and URL, run the code under test, then
// inspect Calls:
//
//	m := mock.New(mock.Config{})
//	m.On(http.MethodGet, "https://api.ninoxdb.de/v1/teams/").
//	    ReturnJSON(http.StatusOK, []ninox.Team{{ID: "t1", Name: "Acme"}})
//
//	client, _ := ninox.New(ninox.WithTransport(m))
//
// A URL registered without a query string also matches requests to the same
// URL with any query string.
package mock
