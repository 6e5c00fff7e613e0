// Package download provides the download orchestration logic for
// fetching comics from the catalog.
//
// # Manager
//
// The Manager processes one comic at a time:
//
//  1. Fetch the metadata (a failure skips the comic)
//  2. Try each image candidate in order, high resolution first
//  3. Record the URL that worked in the metadata
//  4. Save the metadata as indented JSON
//  5. Write a thumbnail (optional)
//
// and waits the configured delay before the next comic.
//
// # Basic Usage
//
//	manager := download.NewManager(settings, http.NewClient(settings), func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	result, err := manager.Reconcile(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := manager.Run(ctx, result.Missing)
//
// # Outcomes
//
// Every comic ends as OutcomeSuccess, OutcomePartial (image failed, metadata
// kept) or OutcomeFailed (metadata failed). None of them stops the batch;
// Run only returns early when its context is cancelled.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	    ID, Current, Total int
//	}
package download
