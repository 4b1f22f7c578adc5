// Package ctf provides types, interfaces, and helpers for working with the
// CollabNet TeamForge REST API.
//
// # Overview
//
// The ctf package defines the domain types (Project, Tracker, Artifact,
// Package, Release, DocumentFolder, and friends) and the interfaces for
// resource-oriented clients (ProjectsClient, ArtifactsClient, ...). A
// concrete implementation is provided by the ctfclient package, which wires
// configuration, transport, and session authentication. Most consumers
// should import ctfclient to construct a client and then interact with the
// resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/teamforge-io/ctf/pkg/ctf"
//	  "github.com/teamforge-io/ctf/pkg/ctfclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := ctfclient.New(ctx, &ctf.Config{
//	    ServerURL: "https://forge.example.com",
//	    Username:  "builder",
//	    Password:  "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  projects, err := cli.Projects().List(ctx, &ctf.QueryParams{Count: ctf.FetchAll})
//	  if err != nil { log.Fatal(err) }
//	  _ = projects.ByTitle("Demo")
//	}
//
// # List envelopes and lookup
//
// Every list endpoint returns the {"items": [...]} envelope; clients decode
// it into a TitledCollection, which preserves server order and adds linear
// ByTitle/ByID lookup.
//
// # Artifact refill
//
// Artifacts obtained from list or filter responses are summaries. Call
// ArtifactsClient.Refill before Update; updating a summary fails with
// ErrArtifactNotRefilled rather than writing partial data back.
//
// # Errors
//
// Remote failures surface as *APIError carrying the HTTP status, a
// FailureKind classification, and the message extracted from the response
// body. Match with errors.As or the IsNotFound/IsUnauthenticated/IsConflict
// helpers.
package ctf
