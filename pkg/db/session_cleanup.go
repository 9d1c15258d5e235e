package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smith3v/scripture-vocab/pkg/logger"
)

const (
	SessionCleanupInterval = time.Hour
	DefaultAbandonAfter    = 24 * time.Hour
)

// answerWrong mirrors the scheduler's failing answer so bundles can count
// correct entries without importing the scheduler.
const answerWrong = "wrong"

// BundleSession builds the immutable record for entries. StartedAt falls back
// to the first entry when zero.
func BundleSession(id uuid.UUID, listID string, startedAt, endedAt time.Time, entries []StudySessionEntry, reason string) (StudySession, error) {
	ids := make([]uuid.UUID, 0, len(entries))
	correct := 0
	for _, e := range entries {
		ids = append(ids, e.ID)
		if e.Answer != answerWrong {
			correct++
		}
	}
	raw, err := EncodeEntryIDs(ids)
	if err != nil {
		return StudySession{}, err
	}
	if startedAt.IsZero() && len(entries) > 0 {
		startedAt = entries[0].CreatedAt
	}
	return StudySession{
		ID:           id,
		ListID:       listID,
		StartedAt:    startedAt,
		EndedAt:      endedAt,
		EntryIDs:     raw,
		EntryCount:   len(entries),
		CorrectCount: correct,
		EndedReason:  reason,
	}, nil
}

// CloseAbandonedSessions writes a session record for entries whose run never
// ended, once the newest entry of the run is older than abandonAfter.
func CloseAbandonedSessions(ctx context.Context, now time.Time, abandonAfter time.Duration) (int, error) {
	if DB == nil {
		return 0, nil
	}
	if abandonAfter <= 0 {
		abandonAfter = DefaultAbandonAfter
	}
	cutoff := now.Add(-abandonAfter)

	var orphans []StudySessionEntry
	if err := DB.WithContext(ctx).
		Where("session_id NOT IN (?)", DB.Model(&StudySession{}).Select("id")).
		Order("created_at ASC, id ASC").
		Find(&orphans).Error; err != nil {
		return 0, err
	}

	runs := make(map[uuid.UUID][]StudySessionEntry)
	var order []uuid.UUID
	for _, e := range orphans {
		if _, ok := runs[e.SessionID]; !ok {
			order = append(order, e.SessionID)
		}
		runs[e.SessionID] = append(runs[e.SessionID], e)
	}

	closed := 0
	for _, id := range order {
		entries := runs[id]
		last := entries[len(entries)-1].CreatedAt
		if last.After(cutoff) {
			continue
		}
		session, err := BundleSession(id, "", time.Time{}, last, entries, EndedReasonAbandoned)
		if err != nil {
			return closed, err
		}
		if err := DB.WithContext(ctx).Create(&session).Error; err != nil {
			return closed, err
		}
		closed++
	}
	return closed, nil
}

func StartSessionCleanup(ctx context.Context, interval, abandonAfter time.Duration) {
	if interval <= 0 {
		interval = SessionCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			closed, err := CloseAbandonedSessions(ctx, time.Now().UTC(), abandonAfter)
			if err != nil {
				logger.Error("failed to close abandoned sessions", "error", err)
				continue
			}
			if closed > 0 {
				logger.Info("closed abandoned sessions", "count", closed)
			}
		}
	}
}
