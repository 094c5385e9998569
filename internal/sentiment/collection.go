package sentiment

import (
	"log/slog"
	"sync"

	"github.com/spacesedan/sentirank/internal/models"
)

const initialCollectionSize = 16

// ResultCollection is an append-only list of records. New entries are
// prepended; nil entries stand for failed submissions and are kept.
type ResultCollection struct {
	records     []*models.SentimentRecord
	recordsLock sync.Mutex
}

func NewResultCollection() *ResultCollection {
	return &ResultCollection{
		records: make([]*models.SentimentRecord, 0, initialCollectionSize),
	}
}

// Add stores record at the head of the collection.
func (c *ResultCollection) Add(record *models.SentimentRecord) {
	c.recordsLock.Lock()
	defer c.recordsLock.Unlock()

	c.records = append(c.records, nil)
	copy(c.records[1:], c.records)
	c.records[0] = record
}

// Snapshot returns the records newest first.
func (c *ResultCollection) Snapshot() []*models.SentimentRecord {
	c.recordsLock.Lock()
	defer c.recordsLock.Unlock()

	return append([]*models.SentimentRecord(nil), c.records...)
}

// Ranked returns a sorted copy of the collection. The collection itself keeps
// insertion order.
func (c *ResultCollection) Ranked(ranker *Ranker) []*models.SentimentRecord {
	records := c.Snapshot()
	ranker.Sort(records)
	return records
}

func (c *ResultCollection) Size() int {
	c.recordsLock.Lock()
	defer c.recordsLock.Unlock()
	return len(c.records)
}

// Reset drops every record.
func (c *ResultCollection) Reset() {
	c.recordsLock.Lock()
	defer c.recordsLock.Unlock()

	slog.Info("[ResultCollection] Resetting results",
		slog.Int("dropped", len(c.records)))
	c.records = make([]*models.SentimentRecord, 0, initialCollectionSize)
}
