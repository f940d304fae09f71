package service

import (
	"fmt"
	"sync"
	"time"
)

// ScheduleLock serializes booking-affecting operations per doctor per day.
// Assignment, window creation and window deletion for the same doctor and
// date must not interleave between their conflict check and their write, or
// the check is stale. Acquisition is fail-fast: a contested key reports busy
// instead of queueing.
type ScheduleLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewScheduleLock() *ScheduleLock {
	return &ScheduleLock{locks: make(map[string]*sync.Mutex)}
}

func (l *ScheduleLock) key(doctorID int, date time.Time) string {
	return fmt.Sprintf("%d:%s", doctorID, date.Format("2006-01-02"))
}

// TryLock acquires the exclusive section for (doctorID, date). It returns
// false immediately when another operation holds it.
func (l *ScheduleLock) TryLock(doctorID int, date time.Time) bool {
	l.mu.Lock()
	m, ok := l.locks[l.key(doctorID, date)]
	if !ok {
		m = &sync.Mutex{}
		l.locks[l.key(doctorID, date)] = m
	}
	l.mu.Unlock()
	return m.TryLock()
}

func (l *ScheduleLock) Unlock(doctorID int, date time.Time) {
	l.mu.Lock()
	m := l.locks[l.key(doctorID, date)]
	l.mu.Unlock()
	if m != nil {
		m.Unlock()
	}
}
