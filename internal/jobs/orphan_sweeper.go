package jobs

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"

	"catalogstore/internal/assets"
	"catalogstore/internal/repositories"
)

// OrphanSweeper periodically removes stored assets no product record
// references. Orphans appear when an asset delete is tolerated during an
// update or delete, or when a create fails after the asset write.
type OrphanSweeper struct {
	scheduler   gocron.Scheduler
	productRepo repositories.ProductRepository
	assetStore  assets.Store
	interval    time.Duration
	minAge      time.Duration
}

func NewOrphanSweeper(productRepo repositories.ProductRepository, assetStore assets.Store, interval, minAge time.Duration) (*OrphanSweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &OrphanSweeper{
		scheduler:   scheduler,
		productRepo: productRepo,
		assetStore:  assetStore,
		interval:    interval,
		minAge:      minAge,
	}, nil
}

// Start registers and starts the sweep job.
func (s *OrphanSweeper) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			if err := s.Sweep(context.Background()); err != nil {
				log.Printf("Orphan sweep failed: %v", err)
			}
		}),
		gocron.WithName("orphaned-asset-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	log.Printf("Starting orphaned-asset sweeper (every %s)", s.interval)
	s.scheduler.Start()
	return nil
}

func (s *OrphanSweeper) Stop() error {
	return s.scheduler.Shutdown()
}

// Sweep deletes every stored asset that no product references and that is
// older than the configured minimum age. The age check keeps it from racing
// an in-flight create whose record write has not landed yet.
func (s *OrphanSweeper) Sweep(ctx context.Context) error {
	names, err := s.assetStore.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return err
	}

	referenced := make(map[string]struct{}, len(products))
	for _, product := range products {
		referenced[product.ImageFileName] = struct{}{}
	}

	removed := 0
	for _, name := range names {
		if _, ok := referenced[name]; ok {
			continue
		}
		if age, ok := assetAge(name); !ok || age < s.minAge {
			continue
		}
		if err := s.assetStore.Delete(ctx, name); err != nil {
			log.Printf("Failed to remove orphaned asset %s: %v", name, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("Orphan sweep removed %d asset(s)", removed)
	}
	return nil
}

// assetAge derives the asset's age from its millisecond-timestamp name
// prefix. Assets without the expected prefix are left alone.
func assetAge(name string) (time.Duration, bool) {
	prefix, _, found := strings.Cut(name, "_")
	if !found {
		return 0, false
	}
	millis, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, false
	}
	return time.Since(time.UnixMilli(millis)), true
}
