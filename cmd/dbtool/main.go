package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"text/tabwriter"
)

func main() {
	list := flag.Int("list", 0, "print the N most recent itineraries after initializing the schema")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" && cfg.DBPath == "" {
		log.Fatal("DATABASE_URL or DB_PATH is required")
	}

	conn, dialect, err := db.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Printf("Initializing %s schema...", dialect)
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *list <= 0 {
		return
	}

	repo := repositories.NewItineraryRepository(conn, dialect)
	summaries, err := repo.ListItineraries(context.Background(), *list)
	if err != nil {
		log.Fatalf("listing itineraries failed: %v", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tROUND TRIP\tSTOPS")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%d\n", s.ID, s.CreatedAt, s.RoundTrip, s.StopCount)
	}
	tw.Flush()
}
