// Package ninox provides a Go client for the Ninox database REST API.
//
// A Client is a session bound to one team and one database. Both are named
// by their display names and resolved to ids by Auth; every other operation
// requires a successful Auth first.
//
// # Quick Start
//
//	client, err := ninox.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.Auth(ctx, ninox.AuthOptions{
//	    AuthKey:  os.Getenv("NINOX_AUTH_KEY"),
//	    Team:     "Acme",
//	    Database: "CRM",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	records, err := client.ListRecords(ctx, "Customers", nil)
//
// # Records
//
// Records without an ID are created by SaveRecords, records with one are
// updated. Reads accept field projections:
//
//	client.GetRecord(ctx, "Customers", "42", ninox.WithFields("Name", "Email"))
//	client.ListRecords(ctx, "Customers", nil, ninox.WithoutFields("Notes"))
//
// WithFields drops fields whose value is empty, false or zero; WithoutFields
// keeps the remaining values as they are.
//
// # Queries
//
// Query evaluates an expression and Exec runs a script. Both return a Result
// whose Kind tells whether the backend computed a number, string, bool, list
// or object.
//
// # Error Handling
//
// Errors are typed and can be checked with errors.Is:
//
//	err := client.Auth(ctx, opts)
//	if errors.Is(err, ninox.ErrNotFound) {
//	    // Team or database name did not match
//	}
//	if errors.Is(err, ninox.ErrAuthentication) {
//	    // Auth key rejected
//	}
//
// Nothing is retried by the client.
//
// # Testing
//
// Pass a transport/mock.Transport with WithTransport to run code against
// canned responses, or depend on the Session interface and substitute your
// own implementation.
package ninox
