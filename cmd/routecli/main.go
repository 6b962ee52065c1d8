package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/adapters/tabular"
	"route-optimizer-service/internal/app"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// routecli plans one route from a CSV or XLSX stop table and writes the
// itinerary as CSV.
func main() {
	in := flag.String("in", "", "stop table (.csv or .xlsx)")
	out := flag.String("out", "", "output CSV path (default stdout)")
	roundTrip := flag.Bool("round-trip", false, "return to the first stop")
	save := flag.Bool("save", false, "store the itinerary in the configured database")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: routecli -in stops.csv [-round-trip] [-out route.csv] [-save]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := obs.NewLogger(os.Stderr, obs.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	var repo ports.ItineraryRepository
	if *save {
		conn, dialect, err := db.Open(cfg.DatabaseURL, cfg.DBPath)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()
		if err := repositories.InitSchema(conn); err != nil {
			log.Fatal(err)
		}
		repo = repositories.NewItineraryRepository(conn, dialect)
	}

	planner, err := app.NewPlanner(cfg, repo)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(planner, *in, *out, *roundTrip); err != nil {
		log.Fatal(err)
	}
}

func run(planner *services.RoutePlanner, in, out string, roundTrip bool) error {
	table, err := tabular.LoadFile(in)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	it, err := planner.PlanRoute(ctx, services.PlanRouteRequest{
		Table:     table,
		RoundTrip: roundTrip,
		Progress: func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rgeocoding %d/%d", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		},
	})
	if err != nil {
		return err
	}

	if out == "" {
		if err := tabular.WriteItineraryCSV(os.Stdout, it); err != nil {
			return err
		}
	} else {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %q: %w", out, err)
		}
		if err := writeItinerary(f, it); err != nil {
			return fmt.Errorf("write %q: %w", out, err)
		}
	}

	fmt.Fprintf(os.Stderr, "%d stops, %.1f km, %d min (itinerary %s)\n",
		len(it.Stops), float64(it.TotalDistanceMeters)/1000, it.TotalDurationSeconds/60, it.ID)
	return nil
}

// writeItinerary writes the CSV and closes wc, reporting the first error.
func writeItinerary(wc io.WriteCloser, it *domain.Itinerary) error {
	if err := tabular.WriteItineraryCSV(wc, it); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
