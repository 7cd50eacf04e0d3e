//go:build ignore

// tail_events prints union lifecycle events as they are appended.
//
//	go run scripts/tail_events.go -redis localhost:6379
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"
)

type unionEvent struct {
	EventID    string          `json:"event_id"`
	Type       string          `json:"type"`
	UnionID    string          `json:"union_id"`
	Union      json.RawMessage `json:"union,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	stream := flag.String("stream", "stream:union:events", "Events stream")
	from := flag.String("from", "$", "Start ID; 0 replays the whole stream")
	full := flag.Bool("full", false, "Print the union document too")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	fmt.Printf("Tailing %s on %s\n", *stream, *redisAddr)

	lastID := *from
	for {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{*stream, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if err != redis.Nil {
				log.Printf("read failed: %v", err)
				time.Sleep(time.Second)
			}
			continue
		}

		for _, s := range results {
			for _, msg := range s.Messages {
				lastID = msg.ID

				data, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}
				var event unionEvent
				if err := json.Unmarshal([]byte(data), &event); err != nil {
					log.Printf("%s: malformed event: %v", msg.ID, err)
					continue
				}

				fmt.Printf("%s  %-14s %s  %s\n",
					event.OccurredAt.Format(time.RFC3339), event.Type, event.UnionID, msg.ID)
				if *full && len(event.Union) > 0 {
					fmt.Printf("  %s\n", event.Union)
				}
			}
		}
	}
}
