package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	flag "github.com/spf13/pflag"
)

var (
	baseURL    = flag.String("url", "http://127.0.0.1:18090", "stash base URL")
	numWorkers = flag.Int("workers", 50, "concurrent workers")
	phaseTime  = flag.Duration("duration", 10*time.Second, "duration of each phase")
	numUsers   = flag.Int("users", 200, "distinct usernames")
)

var (
	categories    = []string{"Dining", "Groceries", "Shopping", "Transport", "Entertainment", "savings"}
	personalities = []string{"Heavy Spender", "Medium Spender", "Max Saver"}
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type op func(rng *rand.Rand) (endpoint string, ok bool)

type endpointStats struct {
	count     int
	errors    int
	latencies []time.Duration
}

type collector struct {
	mu    sync.Mutex
	stats map[string]*endpointStats
}

func (c *collector) add(endpoint string, ok bool, latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, found := c.stats[endpoint]
	if !found {
		s = &endpointStats{}
		c.stats[endpoint] = s
	}
	s.count++
	if !ok {
		s.errors++
	}
	s.latencies = append(s.latencies, latency)
}

func main() {
	flag.Parse()
	fmt.Println("=== stash load test ===")
	fmt.Printf("Workers: %d | Phase: %s | Users: %d\n\n", *numWorkers, *phaseTime, *numUsers)

	if !waitForServer() {
		fmt.Println("FAILED: server not responding")
		return
	}

	fmt.Println("--- Phase 1: budget cap writes ---")
	run(weighted{{1, putCap}})

	fmt.Println("\n--- Phase 2: dashboard load ---")
	run(weighted{
		{0.25, getOverview},
		{0.20, getCaps},
		{0.20, putCap},
		{0.15, checkSession},
		{0.10, checkReset},
		{0.10, startSession},
	})
}

func waitForServer() bool {
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			drain(resp)
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

type weighted []struct {
	weight float64
	fn     op
}

func (w weighted) pick(rng *rand.Rand) op {
	r := rng.Float64()
	for _, entry := range w {
		if r < entry.weight {
			return entry.fn
		}
		r -= entry.weight
	}
	return w[len(w)-1].fn
}

func run(ops weighted) {
	c := &collector{stats: make(map[string]*endpointStats)}
	deadline := time.Now().Add(*phaseTime)

	var wg sync.WaitGroup
	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for time.Now().Before(deadline) {
				start := time.Now()
				endpoint, ok := ops.pick(rng)(rng)
				c.add(endpoint, ok, time.Since(start))
			}
		}(time.Now().UnixNano() + int64(i))
	}
	wg.Wait()

	report(c.stats)
}

func report(all map[string]*endpointStats) {
	endpoints := make([]string, 0, len(all))
	for ep := range all {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 78))

	total, errs := 0, 0
	for _, ep := range endpoints {
		s := all[ep]
		total += s.count
		errs += s.errors
		sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
		fmt.Printf("  %-28s %8d %6d %10s %10s %10s\n", ep, s.count, s.errors,
			quantile(s.latencies, 0.50), quantile(s.latencies, 0.95), quantile(s.latencies, 0.99))
	}
	fmt.Println("  " + strings.Repeat("-", 78))
	fmt.Printf("  Total: %d reqs | Errors: %d | RPS: %.0f\n", total, errs, float64(total)/phaseTime.Seconds())
}

func quantile(sorted []time.Duration, q float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)) * q)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx].Round(10 * time.Microsecond)
}

func username(rng *rand.Rand) string {
	return fmt.Sprintf("user%d", rng.Intn(*numUsers))
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func do(method, path string, body any) bool {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, *baseURL+path, reader)
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return false
	}
	drain(resp)
	return resp.StatusCode < 300
}

func putCap(rng *rand.Rand) (string, bool) {
	path := fmt.Sprintf("/users/%s/budget-caps/%s", username(rng), url.PathEscape(categories[rng.Intn(len(categories))]))
	return "PUT budget-caps/{category}", do(http.MethodPut, path, map[string]float64{"value": float64(rng.Intn(30000))})
}

func getCaps(rng *rand.Rand) (string, bool) {
	return "GET budget-caps", do(http.MethodGet, "/users/"+username(rng)+"/budget-caps", nil)
}

func getOverview(rng *rand.Rand) (string, bool) {
	q := url.Values{"personality": {personalities[rng.Intn(len(personalities))]}}
	return "GET budget", do(http.MethodGet, "/users/"+username(rng)+"/budget?"+q.Encode(), nil)
}

func checkSession(rng *rand.Rand) (string, bool) {
	return "GET session/check", do(http.MethodGet, "/users/"+username(rng)+"/session/check", nil)
}

func checkReset(rng *rand.Rand) (string, bool) {
	return "POST monthly-reset/check", do(http.MethodPost, "/users/"+username(rng)+"/monthly-reset/check", nil)
}

func startSession(rng *rand.Rand) (string, bool) {
	body := map[string]string{
		"originalPersonality":  personalities[rng.Intn(len(personalities))],
		"temporaryPersonality": personalities[rng.Intn(len(personalities))],
	}
	return "POST session", do(http.MethodPost, "/users/"+username(rng)+"/session", body)
}
