// Package msclient provides the primary entry point for constructing a
// MediSeek API client that implements the mediseek.Client interface.
//
// It layers configuration, HTTP transport, and auth-token lifecycle on top of
// the resource interfaces and types defined in the mediseek package. Most
// applications should import msclient to build a client, then use the
// returned mediseek.Client to access resource-specific clients, for example
// Clinics(), Bookings(), Chat().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/mediseek-io/mediseek-client/pkg/mediseek"
//	  "github.com/mediseek-io/mediseek-client/pkg/msclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just an API endpoint (no auth).
//	  cli, err := msclient.New(&mediseek.Config{APIEndpoint: "https://api.mediseek.io"})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an access token you already have:
//	  cli, err = msclient.NewWithToken("https://api.mediseek.io", "eyJhbGciOi...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Authenticate and let the client install the session token:
//	  session, err := cli.Auth().Login(ctx, &mediseek.LoginRequest{
//	    Email:    "user@example.com",
//	    Password: "secret-password",
//	  })
//	  if err != nil { log.Fatal(err) } // validation / contract violation
//	  if !session.Success { log.Fatal(session.Error) }
//
//	  clinics, err := cli.Clinics().List(ctx, mediseek.NewQueryParams().WithPage(1, 20))
//	  if err != nil { log.Fatal(err) }
//	  _ = clinics
//	}
//
// # Session state
//
// Each client constructed by New owns its session: the bearer token installed
// by Login/Signup (or SetAuthToken) applies to that client's requests only,
// and a 401 response clears it without touching other clients.
package msclient
