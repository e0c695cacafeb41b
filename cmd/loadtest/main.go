package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"
)

type AuthResponse struct {
	Token    string `json:"access_token"`
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type result struct {
	status  int
	latency time.Duration
}

func main() {
	baseURL := flag.String("base", "http://localhost:8080", "report server base URL")
	username := flag.String("user", "admin", "account holding report/conversations:site")
	password := flag.String("password", "", "password for -user")
	workers := flag.Int("workers", 50, "concurrent clients")
	requests := flag.Int("requests", 20, "report requests per client")
	conversation := flag.Int("conversation", 0, "also fetch this conversation's messages (0 = list only)")
	flag.Parse()

	token, err := authenticate(*baseURL, *username, *password)
	if err != nil {
		log.Fatalf("❌ Login failed [%s]: %v", *username, err)
	}

	log.Printf("🔥 STARTING LOAD TEST: %d clients, %d requests each...", *workers, *requests)

	results := make(chan result, (*workers)*(*requests))
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runClient(*baseURL, token, *requests, *conversation, results)
		}()
	}
	wg.Wait()
	close(results)

	summarize(results)
	log.Println("✅ LOAD TEST COMPLETE")
}

// runClient alternates between the conversation list and one conversation's messages.
func runClient(baseURL, token string, n, conversationID int, out chan<- result) {
	client := &http.Client{Timeout: 30 * time.Second}
	for i := 0; i < n; i++ {
		target := baseURL + "/report/conversations"
		if conversationID != 0 && i%2 == 1 {
			target = fmt.Sprintf("%s?conversation=%d", target, conversationID)
		}
		out <- fetch(client, target, token)
	}
}

// fetch reports status 0 for requests that never got a response.
func fetch(client *http.Client, target, token string) result {
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		log.Printf("❌ Bad request [%s]: %v", target, err)
		return result{}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return result{latency: time.Since(start)}
	}
	resp.Body.Close()
	return result{status: resp.StatusCode, latency: time.Since(start)}
}

func summarize(results <-chan result) {
	var latencies []time.Duration
	statuses := map[int]int{}
	for r := range results {
		latencies = append(latencies, r.latency)
		statuses[r.status]++
	}
	if len(latencies) == 0 {
		return
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	pct := func(p float64) time.Duration {
		return latencies[int(float64(len(latencies)-1)*p)]
	}

	log.Printf("📊 requests=%d p50=%v p95=%v p99=%v max=%v", len(latencies), pct(0.50), pct(0.95), pct(0.99), latencies[len(latencies)-1])
	for status, count := range statuses {
		if status == 0 {
			log.Printf("❌ transport errors: %d", count)
			continue
		}
		log.Printf("   HTTP %d: %d", status, count)
	}
}

func authenticate(baseURL, username, password string) (string, error) {
	resp, err := postJSON(baseURL+"/login", map[string]string{"username": username, "password": password})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var data AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	return data.Token, nil
}

func postJSON(url string, data interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return http.Post(url, "application/json", bytes.NewBuffer(jsonData))
}
