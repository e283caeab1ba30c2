// Package mediseek provides types, interfaces, and helpers for working with
// the MediSeek clinic-discovery and booking API.
//
// # Overview
//
// The mediseek package defines the domain types (User, Clinic, Booking,
// ChatMessage), the request DTOs with runtime validation, and the interfaces
// for resource-oriented clients (AuthClient, ClinicsClient, BookingsClient,
// and so on). A concrete implementation of these clients is provided by the
// msclient package, which wires configuration, transport, and auth-token
// lifecycle. Most consumers should import msclient to construct a client and
// then interact with the resource client interfaces exposed here.
//
// Getting a client
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
//	  cli, err := msclient.New(&mediseek.Config{APIEndpoint: "https://api.mediseek.io"})
//	  if err != nil { log.Fatal(err) }
//
//	  clinics, err := cli.Clinics().List(ctx, mediseek.NewQueryParams().WithPage(1, 20))
//	  if err != nil { log.Fatal(err) }
//	  _ = clinics
//	}
//
// # Envelopes and errors
//
// Every endpoint responds with an Envelope: {success, data, message, error}.
// Resource clients return envelope values for ordinary failures (HTTP status
// errors, network loss, superseded requests) so callers branch on Success
// instead of handling exceptions. Only contract violations come back as a Go
// error (*ValidationError): a request body failing validation before I/O, or
// a response breaking its declared shape. Helpers such as IsUnauthorized,
// IsNotFound, and IsCancelled make it easy to branch on typed transport
// errors where they do appear.
//
// # Cache keys
//
// Domain produces hierarchical cache keys: ClinicsDomain.Detail("42") nests
// under ClinicsDomain.Details() which nests under ClinicsDomain.All(), so
// invalidating a prefix reaches every key below it. The querycache package
// builds its invalidation contract on this hierarchy.
//
// # Interceptors and caching
//
// The package includes request/response interceptors (logging, auth headers,
// 401 token clearing, metrics) and a pluggable Cache abstraction with memory
// and NATS KV backends. The msclient package composes these pieces for a
// sensible default client; applications with advanced needs can use the
// primitives directly.
package mediseek
