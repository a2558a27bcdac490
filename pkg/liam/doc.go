// Package liam is a client for the LIAM memory-management HTTP API.
//
// The client wraps each API endpoint (memory creation, listing, chat,
// summarization, tag operations, health) as a method that builds an
// ordered JSON payload, optionally signs it with ECDSA P-256, and POSTs
// it to {baseURL}/{endpoint}. Batch helpers fan the single-item calls out
// over a collection with a bounded concurrency ceiling, collecting
// per-item outcomes instead of aborting on the first failure.
//
// Construction fails fast: a missing API key or an unparsable private key
// is reported by New, never deferred to the first request.
//
//	client, err := liam.New(liam.Config{
//	    APIKey:         os.Getenv("LIAM_API_KEY"),
//	    PrivateKeyPath: "private_key.pem",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	resp, err := client.CreateMemory(ctx, liam.CreateMemoryRequest{
//	    UserKey: "user_123",
//	    Content: "Prefers window seats",
//	    Tag:     "travel",
//	})
//
// When a private key is configured the client runs in signed mode and adds
// a "signature" header computed over the exact request body bytes; without
// one it sends only the API key.
package liam
