// Defines the WorkItem struct that models one tray moving through the line,
// and the Batch struct that groups trays carried together by a pickup agent.

package sim

import "fmt"

// WorkItem models a single tray's lifecycle. Identity is fixed at creation;
// the timestamp fields are appended as the tray progresses and never
// rewritten afterwards.
type WorkItem struct {
	ID int // Unique identifier, assigned densely from 0

	EnteredPrep float64 // Time the tray joined the prep admission queue
	BufferedAt  float64 // Time the tray was placed into the shared buffer
	BatchID     int     // Batch the tray was carried in (-1 until picked up)
	CompletedAt float64 // Time the finish stage released the tray
}

// This method returns a human-readable string representation of a WorkItem.
func (w WorkItem) String() string {
	return fmt.Sprintf("WorkItem: (ID: %d, BatchID: %d, BufferedAt: %.3f, CompletedAt: %.3f)",
		w.ID, w.BatchID, w.BufferedAt, w.CompletedAt)
}

// Batch represents a group of trays moved together by one pickup agent.
// Items keep the order in which they entered the buffer.
type Batch struct {
	ID       int
	Items    []*WorkItem
	FormedAt float64
	AgentID  int
	Size     int
}

// NewBatch creates a Batch from the trays drained off the buffer front.
func NewBatch(id int, agentID int, formedAt float64, items []*WorkItem) *Batch {
	b := &Batch{
		ID:       id,
		Items:    items,
		FormedAt: formedAt,
		AgentID:  agentID,
		Size:     len(items),
	}
	for _, it := range items {
		it.BatchID = id
	}
	return b
}
