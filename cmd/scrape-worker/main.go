// Long-running worker: consumes scrape tasks from the broker and reports
// run results back.
package main

import (
	"context"
	"log"

	"eaukcija-parser-service/internal"
)

func main() {
	app, err := internal.NewApp(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}
