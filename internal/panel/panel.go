// Package panel manages the state behind one weather panel. Two instances
// exist per session (local location, searched city) and share nothing, so a
// failure in one never affects the other. Rendering itself lives elsewhere;
// Snapshot is its pure input.
package panel

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/weatheria/weatheria/internal/client"
	"github.com/weatheria/weatheria/internal/weather"
)

// Fetcher is the subset of the service API client a panel needs.
type Fetcher interface {
	CurrentByCity(ctx context.Context, city string) (weather.WeatherSnapshot, error)
	CurrentByCoords(ctx context.Context, lat, lon float64) (weather.WeatherSnapshot, error)
	Forecast(ctx context.Context, lat, lon float64) ([]weather.DailyForecast, error)
}

var _ Fetcher = (*client.Client)(nil)

// Snapshot is a copy of a panel's visible state.
type Snapshot struct {
	Weather  *weather.WeatherSnapshot
	Forecast []weather.DailyForecast
	Loading  bool
	Err      string

	// ImageLoading sequences a visual transition after a new snapshot lands;
	// it carries no business meaning.
	ImageLoading bool
}

// Panel holds one panel's state behind its own mutex.
type Panel struct {
	fetcher Fetcher

	mu       sync.Mutex
	weather  *weather.WeatherSnapshot
	forecast []weather.DailyForecast
	loading  bool
	errMsg   string
	imgBusy  bool
}

// New constructs an empty Panel.
func New(fetcher Fetcher) *Panel {
	return &Panel{fetcher: fetcher, imgBusy: true}
}

// LoadByCoords loads current conditions and the forecast for known
// coordinates. Both calls need only the coordinates, so they run
// concurrently; whichever parts succeed are applied, and the first failure
// becomes the panel error.
func (p *Panel) LoadByCoords(ctx context.Context, lat, lon float64) {
	p.mu.Lock()
	p.loading = true
	p.errMsg = ""
	p.mu.Unlock()

	var (
		snap     weather.WeatherSnapshot
		daily    []weather.DailyForecast
		gotSnap  bool
		gotDaily bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := p.fetcher.CurrentByCoords(gctx, lat, lon)
		if err != nil {
			return err
		}
		snap, gotSnap = s, true
		return nil
	})
	g.Go(func() error {
		d, err := p.fetcher.Forecast(gctx, lat, lon)
		if err != nil {
			return err
		}
		daily, gotDaily = d, true
		return nil
	})
	err := g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	if gotSnap {
		p.weather = &snap
		p.imgBusy = true
	}
	if gotDaily {
		p.forecast = daily
	}
	if err != nil {
		p.errMsg = errorMessage(err)
	}
	p.loading = false
}

// LoadByCity loads current conditions for a searched city, then the
// forecast when the snapshot carries coordinates. The previous result is
// cleared up front: a fresh search replaces the panel wholesale.
func (p *Panel) LoadByCity(ctx context.Context, city string) {
	p.mu.Lock()
	p.loading = true
	p.errMsg = ""
	p.weather = nil
	p.forecast = nil
	p.mu.Unlock()

	snap, err := p.fetcher.CurrentByCity(ctx, city)
	if err != nil {
		p.mu.Lock()
		p.errMsg = errorMessage(err)
		p.loading = false
		p.mu.Unlock()
		return
	}

	p.mu.Lock()
	p.weather = &snap
	p.imgBusy = true
	p.mu.Unlock()

	if snap.Lat != nil && snap.Lon != nil {
		daily, err := p.fetcher.Forecast(ctx, *snap.Lat, *snap.Lon)
		p.mu.Lock()
		if err != nil {
			// The snapshot stays visible; only the forecast failed.
			p.errMsg = errorMessage(err)
		} else {
			p.forecast = daily
		}
		p.mu.Unlock()
	}

	p.mu.Lock()
	p.loading = false
	p.mu.Unlock()
}

// Fail records an out-of-band failure, e.g. a denied geolocation prompt.
func (p *Panel) Fail(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errMsg = msg
	p.loading = false
}

// ImageLoaded clears the visual-transition flag.
func (p *Panel) ImageLoaded() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.imgBusy = false
}

// Snapshot returns a copy of the panel state.
func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Snapshot{
		Loading:      p.loading,
		Err:          p.errMsg,
		ImageLoading: p.imgBusy,
	}
	if p.weather != nil {
		w := *p.weather
		s.Weather = &w
	}
	if p.forecast != nil {
		s.Forecast = make([]weather.DailyForecast, len(p.forecast))
		copy(s.Forecast, p.forecast)
	}
	return s
}

// errorMessage prefers the server's {"error"} message over transport noise.
func errorMessage(err error) string {
	var ae *client.APIError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
