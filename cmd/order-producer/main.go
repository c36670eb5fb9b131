package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
)

// orderRequest mirrors the wire format consumed by the matching service.
type orderRequest struct {
	OrderID  string  `json:"orderID"`
	Type     string  `json:"type"`
	Side     string  `json:"side"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// generateRequests creates a stream of place requests around a base price,
// mixed with cancels of previously placed orders.
func generateRequests(count int, basePrice, priceSpread float64, cancelRatio float64) []orderRequest {
	requests := make([]orderRequest, 0, count)
	var placed []string

	for len(requests) < count {
		if len(placed) > 0 && rand.Float64() < cancelRatio {
			// Cancel a random earlier order. Repeats are fine, the service
			// reports those as business outcomes.
			requests = append(requests, orderRequest{
				OrderID: placed[rand.Intn(len(placed))],
				Type:    "cancel",
			})
			continue
		}

		side := "buy"
		price := basePrice - rand.Float64()*priceSpread*0.8
		if rand.Float64() < 0.5 {
			side = "sell"
			price = basePrice + rand.Float64()*priceSpread*0.8
		}
		price = float64(int(price*10)) / 10 // round to 1 decimal place
		if price <= 0 {
			price = basePrice
		}

		id := ulid.Make().String()
		placed = append(placed, id)
		requests = append(requests, orderRequest{
			OrderID:  id,
			Type:     "place",
			Side:     side,
			Price:    price,
			Quantity: int64(rand.Intn(20) + 1),
		})
	}

	return requests
}

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "orders", "Kafka topic name")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between sending requests")
		count       = flag.Int("count", 1000, "Number of requests to generate")
		basePrice   = flag.Float64("base-price", 3945.5, "Base price for orders")
		priceSpread = flag.Float64("price-spread", 200.0, "Price spread range")
		cancelRatio = flag.Float64("cancel-ratio", 0.2, "Fraction of requests that are cancels")
	)
	flag.Parse()

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	log.Printf("Generating %d requests...", *count)
	requests := generateRequests(*count, *basePrice, *priceSpread, *cancelRatio)

	log.Printf("Sending requests to Kafka broker: %s, topic: %s", *brokers, *topic)

	places, cancels := 0, 0
	for i, request := range requests {
		value, err := json.Marshal(request)
		if err != nil {
			log.Printf("Failed to marshal request %d: %v", i+1, err)
			continue
		}

		msg := kafka.Message{
			Key:   []byte(request.OrderID),
			Value: value,
			Time:  time.Now(),
		}

		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Printf("Failed to send request %d (%s): %v", i+1, request.OrderID, err)
			continue
		}

		if request.Type == "cancel" {
			cancels++
		} else {
			places++
		}

		if (i+1)%100 == 0 || i == len(requests)-1 {
			log.Printf("Sent %d/%d requests", i+1, len(requests))
		}

		if i < len(requests)-1 {
			time.Sleep(*delay)
		}
	}

	log.Printf("--- Summary ---")
	log.Printf("Total Requests: %d", len(requests))
	log.Printf("Placements: %d", places)
	log.Printf("Cancels: %d", cancels)
}
