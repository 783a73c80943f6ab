// Package restclient provides a generic client for conventional REST APIs.
//
// # Overview
//
// A RestClient is bound to an API root. Any resource under that root is
// addressed by name through Resource, which returns a ResourceDriver scoped to
// base_url/<name>. No resource-specific types need to be declared:
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/restclient/pkg/restclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := restclient.New(&restclient.Config{BaseURL: "http://localhost"})
//	  if err != nil { log.Fatal(err) }
//
//	  // GET http://localhost/books/
//	  res, err := cli.Resource("books").List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  defer res.Response.Body.Close()
//
//	  // GET http://localhost/authors/1/
//	  res, err = cli.Resource("authors").Retrieve(ctx, 1)
//	  _ = res
//	}
//
// # URL convention
//
// Collection URLs (List, Create) are base/resource/ and item URLs (Retrieve,
// PartialUpdate, Update, Destroy) are base/resource/key/. A trailing separator
// on the base URL is absorbed, so "http://localhost" and "http://localhost/"
// produce identical URLs.
//
// # Dry-run mode
//
// With Config.URLsOnly set every operation returns a Result carrying only the
// computed URL and no request is made. CollectionURL and ItemURL compute the
// same URLs regardless of the mode.
//
// # Transport
//
// Requests go through a Transport. The default one, built from the transport
// fields of Config, performs a single attempt per call and returns the
// *http.Response untouched: status codes are not checked and bodies are not
// read. Errors from the transport are returned to the caller unchanged. The
// caller is responsible for closing Result.Response.Body.
//
// # Errors
//
// ErrInvalidParameters is the only error defined by this package. It is
// returned by New for a missing or unusable base URL and by item operations
// for an empty key.
package restclient
