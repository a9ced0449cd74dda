package pharmacy

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
)

var ErrMissingMedicine = errors.New("medicine name is required")

// Quote is one vendor's offer for a medicine.
type Quote struct {
	Vendor string  `json:"vendor"`
	Price  float64 `json:"price"`
	URL    string  `json:"url"`
}

// QuoteSet is the full comparison for one medicine. Cheapest names the
// vendor with the lowest price; ties go to the vendor listed first in the
// vendor table.
type QuoteSet struct {
	Medicine string           `json:"medicine"`
	Quotes   map[string]Quote `json:"quotes"`
	Cheapest string           `json:"cheapest"`
}

// vendor couples a price multiplier against the base quote with a purchase
// URL template. Table order decides tie-breaks, so it is a slice, not a map.
type vendor struct {
	name        string
	multiplier  float64
	urlTemplate string
}

var vendors = []vendor{
	{"MedPlus", 1.00, "https://www.medplusmart.com/searchAll?query=%s"},
	{"NetMeds", 0.93, "https://www.netmeds.com/catalogsearch/result?q=%s"},
	{"PharmEasy", 1.05, "https://pharmeasy.in/search/all?name=%s"},
}

// PriceSource produces the base price a vendor comparison starts from.
// Production uses a market simulator; tests pin the price.
type PriceSource interface {
	BasePrice(medicine string) float64
}

// marketSource draws a uniform base price in [100, 400) rupees rounded to
// two decimals, one draw per quote request.
type marketSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMarketSource(seed int64) PriceSource {
	return &marketSource{rng: rand.New(rand.NewSource(seed))}
}

func (m *marketSource) BasePrice(string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return round2(100 + m.rng.Float64()*300)
}

// Engine compares the fixed vendor table against one base price per request.
type Engine struct {
	source PriceSource
}

func NewEngine(source PriceSource) *Engine {
	return &Engine{source: source}
}

// Quotes prices a medicine at every vendor. All vendors are always present
// in the result; prices differ only by the vendor multipliers.
func (e *Engine) Quotes(medicine string) (*QuoteSet, error) {
	medicine = strings.TrimSpace(medicine)
	if medicine == "" {
		return nil, ErrMissingMedicine
	}

	base := e.source.BasePrice(medicine)
	set := &QuoteSet{
		Medicine: medicine,
		Quotes:   make(map[string]Quote, len(vendors)),
	}

	best := math.MaxFloat64
	for _, v := range vendors {
		price := round2(base * v.multiplier)
		set.Quotes[v.name] = Quote{
			Vendor: v.name,
			Price:  price,
			URL:    fmt.Sprintf(v.urlTemplate, strings.ReplaceAll(medicine, " ", "+")),
		}
		if price < best {
			best = price
			set.Cheapest = v.name
		}
	}
	return set, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
