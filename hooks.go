package atlas

import (
	"sync"
)

// Hook function types for catalog events
type (
	// DescriptorWrittenHook is called when a descriptor file is written
	DescriptorWrittenHook func(result WriteResult)

	// DescriptorSkippedHook is called when a write is suppressed
	DescriptorSkippedHook func(result WriteResult)

	// MetadataRefreshedHook is called after the metadata file is refreshed
	MetadataRefreshedHook func(meta Metadata)

	// ProgressHook is called once per entry while WriteAll runs
	ProgressHook func(index, total int, result WriteResult)
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// Hooks provides event callback registration.
//
// Written, skipped and refreshed hooks run after the client lock is
// released and may call back into the client. Progress hooks run during
// WriteAll and must not.
type Hooks interface {
	// OnDescriptorWritten registers a callback for written descriptors
	OnDescriptorWritten(DescriptorWrittenHook)

	// OnDescriptorSkipped registers a callback for skipped descriptors
	OnDescriptorSkipped(DescriptorSkippedHook)

	// OnMetadataRefreshed registers a callback for metadata refreshes
	OnMetadataRefreshed(MetadataRefreshedHook)

	// OnProgress registers a callback for WriteAll progress
	OnProgress(ProgressHook)
}

// hooks manages event callbacks
type hooks struct {
	mu                  sync.RWMutex
	onDescriptorWritten []DescriptorWrittenHook
	onDescriptorSkipped []DescriptorSkippedHook
	onMetadataRefreshed []MetadataRefreshedHook
	onProgress          []ProgressHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnDescriptorWritten registers a callback for written descriptors.
func (c *client) OnDescriptorWritten(fn DescriptorWrittenHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onDescriptorWritten = append(c.hooks.onDescriptorWritten, fn)
}

// OnDescriptorSkipped registers a callback for skipped descriptors.
func (c *client) OnDescriptorSkipped(fn DescriptorSkippedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onDescriptorSkipped = append(c.hooks.onDescriptorSkipped, fn)
}

// OnMetadataRefreshed registers a callback for metadata refreshes.
func (c *client) OnMetadataRefreshed(fn MetadataRefreshedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onMetadataRefreshed = append(c.hooks.onMetadataRefreshed, fn)
}

// OnProgress registers a callback for WriteAll progress.
func (c *client) OnProgress(fn ProgressHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onProgress = append(c.hooks.onProgress, fn)
}

// triggerResults fires the written or skipped hooks for each result
func (h *hooks) triggerResults(results ...WriteResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, result := range results {
		if result.Outcome.Written() {
			for _, hook := range h.onDescriptorWritten {
				hook(result)
			}
			continue
		}
		for _, hook := range h.onDescriptorSkipped {
			hook(result)
		}
	}
}

// triggerRefresh fires the metadata hooks
func (h *hooks) triggerRefresh(meta Metadata) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, hook := range h.onMetadataRefreshed {
		hook(meta)
	}
}

// triggerProgress fires the progress hooks
func (h *hooks) triggerProgress(index, total int, result WriteResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, hook := range h.onProgress {
		hook(index, total, result)
	}
}
