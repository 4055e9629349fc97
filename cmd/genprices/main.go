// Command genprices generates the synthetic mandi price CSV used by the
// advisory service and its test suites. It uses the actual domain generator so
// the fixture always matches service behavior for the same seed.
//
// Usage:
//
//	go run ./cmd/genprices -out data/mandi_prices.csv -seed 42
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/agrichain/advisory-service/internal/adapter/pricestore"
	"github.com/agrichain/advisory-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/mandi_prices.csv", "output path for the price CSV")
	seed := flag.Int64("seed", domain.DefaultSeed, "random seed for the generator")
	flag.Parse()

	series := domain.GenerateSyntheticSeries(*seed)
	if err := pricestore.WriteDataset(*out, series); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	log.Printf("wrote %d records to %s (seed=%d)", len(series), *out, *seed)

	printStats(series)
	return nil
}

// printStats summarizes the dataset per crop, useful when updating test
// assertions after a generator change.
func printStats(series []domain.PriceRecord) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d records, %d crops, %d markets, %d days\n",
		len(series), len(domain.Crops), len(domain.Mandis), domain.SeriesDays)

	for _, crop := range domain.Crops {
		recs := domain.FilterCrop(series, crop)
		if len(recs) == 0 {
			continue
		}

		minModal, maxModal := recs[0].ModalPrice, recs[0].ModalPrice
		var sum int
		for _, r := range recs {
			sum += r.ModalPrice
			if r.ModalPrice < minModal {
				minModal = r.ModalPrice
			}
			if r.ModalPrice > maxModal {
				maxModal = r.ModalPrice
			}
		}

		idx := domain.BuildWeeklyIndex(recs)
		weeks := idx.Weeks()
		fmt.Printf("%-10s mean=₹%d modal=[₹%d, ₹%d] weeks=%d..%d\n",
			crop, sum/len(recs), minModal, maxModal, weeks[0], weeks[len(weeks)-1])
	}
}
