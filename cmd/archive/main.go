// Command archive uploads a snapshot of the match records, the player stats and
// the stats chart to an S3 compatible bucket. Run it from cron or a CI job.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/AdamBeresnev/cue-stats/internal/app"
	"github.com/AdamBeresnev/cue-stats/internal/archive"
	"github.com/AdamBeresnev/cue-stats/internal/config"
	"github.com/AdamBeresnev/cue-stats/internal/db"
	"github.com/joho/godotenv"
)

func main() {
	label := flag.String("label", "default", "snapshot label, used in the object key")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := archive.NewS3Client(ctx, cfg.Archive)
	if err != nil {
		log.Fatal("Failed to create archive client:", err)
	}

	backend, err := app.OpenBackend(cfg, db.MigrationsSource)
	if err != nil {
		log.Fatal("Failed to open match store:", err)
	}
	defer backend.Close()

	matchService, err := backend.MatchService(cfg)
	if err != nil {
		log.Fatal("Failed to set up match service:", err)
	}

	archiver := archive.New(client, cfg.Archive.Bucket, cfg.Archive.Prefix)
	keys, err := archiver.Snapshot(ctx, matchService, *label)
	for _, key := range keys {
		log.Printf("Uploaded s3://%s/%s", cfg.Archive.Bucket, key)
	}
	if err != nil {
		log.Fatal("Snapshot failed:", err)
	}
}
