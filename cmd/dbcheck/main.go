// Command dbcheck prints row counts for every application table and the
// latest snapshots, as a quick health probe against the configured database.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/KaavyaOfficial/momentum-fc/internal/options"
	"github.com/KaavyaOfficial/momentum-fc/internal/storage"
	"github.com/KaavyaOfficial/momentum-fc/pkg/logger"
)

var tables = []string{"matches", "snapshots", "users", "predictions", "referrals"}

func main() {
	log := logger.NewLogger()

	opts, err := options.NewOptions()
	if err != nil {
		log.Fatal("Failed to load options: ", err)
	}

	store, err := storage.NewPostgresStore(opts.DatabaseURL, log)
	if err != nil {
		log.Fatal("Failed to connect: ", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := store.DB()
	for _, table := range tables {
		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			log.Error("Failed to count ", table, ": ", err)
			continue
		}
		fmt.Printf("Table %q has %d rows\n", table, count)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, match_id, captured_at, minute, score_home, score_away, pressure_index
		FROM snapshots ORDER BY captured_at DESC LIMIT 5`)
	if err != nil {
		log.Fatal("Failed to query snapshots: ", err)
	}
	defer rows.Close()

	fmt.Println("Latest snapshots (id, match_id, captured_at, minute, score_h, score_a, p_index):")
	for rows.Next() {
		var (
			id, matchID    int64
			capturedAt     time.Time
			minute, sh, sa int
			pressure       float64
		)
		if err := rows.Scan(&id, &matchID, &capturedAt, &minute, &sh, &sa, &pressure); err != nil {
			log.Fatal("Failed to scan snapshot: ", err)
		}
		fmt.Printf("  %d %d %s %d %d %d %.2f\n",
			id, matchID, capturedAt.Format(time.RFC3339), minute, sh, sa, pressure)
	}
	if err := rows.Err(); err != nil {
		log.Fatal("Snapshot iteration failed: ", err)
	}
}
