package jobs

import (
	"context"
	"log"
	"time"

	"qfifat.backend/internal/domain/repositories"
)

// CouponExpiryJob deactivates coupons whose expiry window has passed
type CouponExpiryJob struct {
	repo     repositories.CouponRepository
	interval time.Duration
	stop     chan struct{}
}

func NewCouponExpiryJob(repo repositories.CouponRepository, interval time.Duration) *CouponExpiryJob {
	return &CouponExpiryJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *CouponExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting coupon expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Coupon expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Coupon expiry job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *CouponExpiryJob) Stop() {
	close(j.stop)
}

func (j *CouponExpiryJob) sweep(ctx context.Context) {
	count, err := j.repo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Error deactivating expired coupons: %v", err)
		return
	}
	if count > 0 {
		log.Printf("✅ Deactivated %d expired coupons", count)
	}
}
