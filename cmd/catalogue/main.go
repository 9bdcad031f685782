// Command catalogue serves the books catalogue API under /api/books.
package main

import (
	"context"
	"log"

	"github.com/relatosdepapel/bookstore-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background(), app.ServiceCatalogue); err != nil {
		log.Fatalf("catalogue: %v", err)
	}
}
