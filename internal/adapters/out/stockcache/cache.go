// Package stockcache caches stock availability snapshots in Redis.
package stockcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/stock"
	"orderflow/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// Cache key and TTL for one variant's stock level. The TTL is short on
// purpose: the snapshot feeds soft and strict validation reads, and a
// stale level only shifts a shortage report by a few minutes at worst.
const (
	keyVariantStock = "stock:variant:%s"
	levelTTL        = 2 * time.Minute
)

// ReadThroughLedger decorates a stock ledger with a Redis read-through
// cache on ReadAvailable. Mutations pass straight through and invalidate
// the touched variants; cache errors fall back to the underlying ledger.
type ReadThroughLedger struct {
	ledger ports.StockLedger
	rdb    *redis.Client
}

// NewReadThroughLedger wraps a ledger with the given Redis client.
func NewReadThroughLedger(ledger ports.StockLedger, rdb *redis.Client) *ReadThroughLedger {
	return &ReadThroughLedger{ledger: ledger, rdb: rdb}
}

type cachedLevel struct {
	Current  int `json:"current"`
	Reserved int `json:"reserved"`
}

// ReadAvailable serves levels from cache where present and reads the
// misses through the underlying ledger.
func (c *ReadThroughLedger) ReadAvailable(
	ctx context.Context,
	variantIDs []kernel.UUID,
) (map[kernel.UUID]stock.Level, error) {
	levels := make(map[kernel.UUID]stock.Level, len(variantIDs))
	misses := make([]kernel.UUID, 0, len(variantIDs))

	for _, id := range variantIDs {
		raw, err := c.rdb.Get(ctx, c.key(id)).Bytes()
		if err != nil {
			misses = append(misses, id)
			continue
		}

		var cached cachedLevel
		if err = json.Unmarshal(raw, &cached); err != nil {
			misses = append(misses, id)
			continue
		}
		levels[id] = stock.Level{Current: cached.Current, Reserved: cached.Reserved}
	}

	if len(misses) == 0 {
		return levels, nil
	}

	fresh, err := c.ledger.ReadAvailable(ctx, misses)
	if err != nil {
		return nil, err
	}

	for id, level := range fresh {
		levels[id] = level
		c.store(ctx, id, level)
	}

	return levels, nil
}

// DeductBatch passes through and invalidates the touched variants.
func (c *ReadThroughLedger) DeductBatch(
	ctx context.Context,
	orderID kernel.UUID,
	lines []stock.BatchLine,
) (stock.BatchResult, error) {
	result, err := c.ledger.DeductBatch(ctx, orderID, lines)
	c.invalidate(ctx, lines)
	return result, err
}

// RestoreBatch passes through and invalidates the touched variants.
func (c *ReadThroughLedger) RestoreBatch(
	ctx context.Context,
	orderID kernel.UUID,
	lines []stock.BatchLine,
) (stock.BatchResult, error) {
	result, err := c.ledger.RestoreBatch(ctx, orderID, lines)
	c.invalidate(ctx, lines)
	return result, err
}

// ReserveBatch passes through and invalidates the touched variants.
func (c *ReadThroughLedger) ReserveBatch(
	ctx context.Context,
	orderID kernel.UUID,
	lines []stock.BatchLine,
) (stock.BatchResult, error) {
	result, err := c.ledger.ReserveBatch(ctx, orderID, lines)
	c.invalidate(ctx, lines)
	return result, err
}

// ReleaseBatch passes through and invalidates the touched variants.
func (c *ReadThroughLedger) ReleaseBatch(
	ctx context.Context,
	orderID kernel.UUID,
	lines []stock.BatchLine,
) (stock.BatchResult, error) {
	result, err := c.ledger.ReleaseBatch(ctx, orderID, lines)
	c.invalidate(ctx, lines)
	return result, err
}

func (c *ReadThroughLedger) key(id kernel.UUID) string {
	return fmt.Sprintf(keyVariantStock, id.String())
}

func (c *ReadThroughLedger) store(ctx context.Context, id kernel.UUID, level stock.Level) {
	raw, err := json.Marshal(cachedLevel{Current: level.Current, Reserved: level.Reserved})
	if err != nil {
		return
	}
	// best effort, the next read simply misses
	_ = c.rdb.Set(ctx, c.key(id), raw, levelTTL).Err()
}

func (c *ReadThroughLedger) invalidate(ctx context.Context, lines []stock.BatchLine) {
	keys := make([]string, len(lines))
	for i, line := range lines {
		keys[i] = c.key(line.VariantID)
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}
