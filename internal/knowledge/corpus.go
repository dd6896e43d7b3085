// Package knowledge holds the static corpus the assistant answers from. The
// corpus is loaded once at startup and never mutated at runtime.
package knowledge

import (
	"context"

	"github.com/gharfix/gharfix-ai-platform/internal/rag"
)

// Corpus is the full knowledge text. It is both ingested into the vector
// index and included in the generation prompt.
const Corpus = `GharFix Services Overview:

1. Tailoring Services
   - Custom stitching, alterations, and repairs for men's, women's, and children's clothing.
2. Massage Services
   - Professional home massage for relaxation, therapy, and wellness.
3. NRI Services
   - End-to-end support for non-resident Indians including bill payments, maintenance, and property management.
4. Ghar Bazaar
   - Assistance with household shopping and essentials.
5. Plumbing Services
   - Repairs for leaky taps, pipe fitting, bathroom installations, and emergency plumbing.
6. Financing Services
   - Affordable loan and EMI solutions for home needs.
7. MacBook Repair Services
   - Professional repair and servicing for MacBooks and Apple devices.
8. Elderly Care
   - Compassionate elderly care at home with trained caregivers.
9. Ghar Chef
   - Book personal chefs for home-cooked meals and special events.
10. Bridal Makeup & Mehendi
    - Professional bridal makeup, hairstyling, and mehendi artists.
11. Digital Signage & Banner Services
    - Design and printing of banners, posters, and digital signage.
12. RO (Water Purifier) Services
    - Installation, repair, and maintenance of water purification systems.
13. Rituals Online
    - Online booking for religious rituals and ceremonies.
14. Electrical Services
    - Electrician services for wiring, repairs, and appliance installations.
15. Housekeeping Services
    - Deep cleaning, dusting, and sanitization of homes and offices.
16. Water Tank Cleaning
    - Professional cleaning and maintenance of overhead and underground water tanks.
17. GharMaid Services
    - Trained domestic help for daily chores, cooking, and cleaning.
18. Monthly Society Maintenance
    - Billing, payments, and regular upkeep for housing societies.
19. Professional Driver Services
    - Trained drivers for personal and business use, hourly or full-time.

We provide services in the following cities:
1. Mumbai
2. Navi Mumbai
3. Lucknow
4. Bangalore
5. Chennai
6. Delhi
7. Hyderabad

Service available 24/7.`

// Seed chunks the corpus and loads it into a freshly rebuilt index.
func Seed(ctx context.Context, embedder rag.Embedder, index rag.Index) error {
	if err := index.Rebuild(ctx); err != nil {
		return err
	}
	return rag.IngestDocuments(ctx, embedder, index, []string{Corpus})
}
