// Command payments serves the payments ledger API under /api/payments.
package main

import (
	"context"
	"log"

	"github.com/relatosdepapel/bookstore-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background(), app.ServicePayments); err != nil {
		log.Fatalf("payments: %v", err)
	}
}
