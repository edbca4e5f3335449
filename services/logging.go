package services

import (
	"log"
	"sync"
	"time"

	"flight-planner/models"

	"gorm.io/gorm"
)

// PlanLogBuffer - batches plan logs and writes them asynchronously
type PlanLogBuffer struct {
	db        *gorm.DB
	logs      []models.PlanLog
	mu        sync.Mutex
	flushSize int           // batch size that triggers a flush
	flushTime time.Duration // periodic flush interval
	stopChan  chan struct{}
	done      chan struct{}
	stopOnce  sync.Once

	written int
	dropped int
}

// NewPlanLogBuffer - start a buffer flushing to db. A nil db drops
// entries at flush time.
func NewPlanLogBuffer(db *gorm.DB, flushSize int, flushInterval time.Duration) *PlanLogBuffer {
	if flushSize <= 0 {
		flushSize = 50
	}
	if flushInterval <= 0 {
		flushInterval = 10 * time.Second
	}
	lb := &PlanLogBuffer{
		db:        db,
		logs:      make([]models.PlanLog, 0, flushSize*2),
		flushSize: flushSize,
		flushTime: flushInterval,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}

	go lb.autoFlush()

	log.Printf("✅ plan log buffer started (flushSize: %d, flushInterval: %v)", flushSize, flushInterval)
	return lb
}

// autoFlush - periodic flush until Stop
func (lb *PlanLogBuffer) autoFlush() {
	defer close(lb.done)
	ticker := time.NewTicker(lb.flushTime)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lb.Flush()
		case <-lb.stopChan:
			lb.Flush()
			return
		}
	}
}

// Add - queue an entry; a full buffer is flushed in the background
func (lb *PlanLogBuffer) Add(entry models.PlanLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	lb.mu.Lock()
	lb.logs = append(lb.logs, entry)
	size := len(lb.logs)
	lb.mu.Unlock()

	if size >= lb.flushSize {
		go lb.Flush()
	}
}

// Flush - write every buffered entry
func (lb *PlanLogBuffer) Flush() {
	lb.mu.Lock()
	if len(lb.logs) == 0 {
		lb.mu.Unlock()
		return
	}
	logsToSave := make([]models.PlanLog, len(lb.logs))
	copy(logsToSave, lb.logs)
	lb.logs = lb.logs[:0]
	lb.mu.Unlock()

	if lb.db == nil {
		lb.mu.Lock()
		lb.dropped += len(logsToSave)
		lb.mu.Unlock()
		return
	}

	if err := lb.db.CreateInBatches(logsToSave, 100).Error; err != nil {
		log.Printf("❌ saving plan logs failed: %v", err)
		lb.mu.Lock()
		lb.dropped += len(logsToSave)
		lb.mu.Unlock()
		return
	}

	lb.mu.Lock()
	lb.written += len(logsToSave)
	lb.mu.Unlock()
	log.Printf("💾 saved %d plan logs", len(logsToSave))
}

// Pending - number of buffered entries
func (lb *PlanLogBuffer) Pending() int {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return len(lb.logs)
}

// Stats - entries written and dropped so far
func (lb *PlanLogBuffer) Stats() (written, dropped int) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.written, lb.dropped
}

// Stop - flush the remainder and end the background goroutine
func (lb *PlanLogBuffer) Stop() {
	lb.stopOnce.Do(func() {
		close(lb.stopChan)
		<-lb.done
		log.Println("🛑 plan log buffer stopped")
	})
}
