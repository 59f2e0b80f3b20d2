package models

import (
	"sync"
	"time"
)

// BatchRun summarizes one processed batch file.
type BatchRun struct {
	File        string    `json:"file"`
	Output      string    `json:"output"`
	Rows        int       `json:"rows"`
	Failed      int       `json:"failed"`
	Err         string    `json:"error,omitempty"`
	ProcessedAt time.Time `json:"processedAt"`
}

type BatchStatus struct {
	Enabled bool      `json:"enabled"`
	Files   int       `json:"files"`
	LastRun *BatchRun `json:"lastRun,omitempty"`
}

// StateManager handles thread-safe batch status
type StateManager struct {
	mu      sync.RWMutex
	enabled bool
	files   int
	last    *BatchRun
}

func (s *StateManager) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

func (s *StateManager) RecordRun(run BatchRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files++
	s.last = &run
}

func (s *StateManager) Status() BatchStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := BatchStatus{Enabled: s.enabled, Files: s.files}
	if s.last != nil {
		last := *s.last
		st.LastRun = &last
	}
	return st
}
