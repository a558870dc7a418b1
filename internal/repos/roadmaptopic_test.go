package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/masarhq/masar-backend/internal/types"
)

func seedRoadmap(t *testing.T, roadmapRepo RoadmapRepo) *types.Roadmap {
	t.Helper()
	now := time.Now()
	roadmap := &types.Roadmap{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Role:      "Software Engineer",
		Details:   datatypes.JSON([]byte(`{}`)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := roadmapRepo.Create(context.Background(), nil, []*types.Roadmap{roadmap}); err != nil {
		t.Fatalf("seed roadmap: %v", err)
	}
	return roadmap
}

func TestInsertIgnoreDuplicateTopic(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	roadmapRepo := NewRoadmapRepo(db, log)
	topicRepo := NewRoadmapTopicRepo(db, log)
	roadmap := seedRoadmap(t, roadmapRepo)

	now := time.Now()
	first := &types.RoadmapTopic{
		ID:        uuid.New(),
		RoadmapID: roadmap.ID,
		Title:     "Version Control",
		Position:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	inserted, err := topicRepo.InsertIgnoreDuplicate(context.Background(), nil, first)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if !inserted {
		t.Fatalf("first insert reported as skipped")
	}

	dup := &types.RoadmapTopic{
		ID:        uuid.New(),
		RoadmapID: roadmap.ID,
		Title:     "Version Control",
		Position:  7,
		CreatedAt: now,
		UpdatedAt: now,
	}
	inserted, err = topicRepo.InsertIgnoreDuplicate(context.Background(), nil, dup)
	if err != nil {
		t.Fatalf("duplicate insert: %v", err)
	}
	if inserted {
		t.Fatalf("duplicate insert reported as written")
	}

	topics, err := topicRepo.GetByRoadmapIDs(context.Background(), nil, []uuid.UUID{roadmap.ID})
	if err != nil {
		t.Fatalf("load topics: %v", err)
	}
	if len(topics) != 1 {
		t.Fatalf("topics: want=1 got=%d", len(topics))
	}
	if topics[0].ID != first.ID || topics[0].Position != 1 {
		t.Fatalf("surviving row is not the first insert: %+v", topics[0])
	}

	// Same title under a different roadmap is its own row.
	other := seedRoadmap(t, roadmapRepo)
	inserted, err = topicRepo.InsertIgnoreDuplicate(context.Background(), nil, &types.RoadmapTopic{
		ID:        uuid.New(),
		RoadmapID: other.ID,
		Title:     "Version Control",
		Position:  1,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil || !inserted {
		t.Fatalf("insert under second roadmap: inserted=%v err=%v", inserted, err)
	}
}

func TestTopicSoftDeleteFiltering(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	roadmapRepo := NewRoadmapRepo(db, log)
	topicRepo := NewRoadmapTopicRepo(db, log)
	roadmap := seedRoadmap(t, roadmapRepo)

	now := time.Now()
	topic := &types.RoadmapTopic{
		ID:        uuid.New(),
		RoadmapID: roadmap.ID,
		Title:     "Databases",
		Position:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := topicRepo.Create(context.Background(), nil, []*types.RoadmapTopic{topic}); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	if err := topicRepo.SoftDeleteByIDs(context.Background(), nil, []uuid.UUID{topic.ID}); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	visible, err := topicRepo.GetByRoadmapIDs(context.Background(), nil, []uuid.UUID{roadmap.ID})
	if err != nil {
		t.Fatalf("load visible: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("soft-deleted topic still visible: %+v", visible)
	}

	unscoped, err := topicRepo.GetByRoadmapIDsUnscoped(context.Background(), nil, []uuid.UUID{roadmap.ID})
	if err != nil {
		t.Fatalf("load unscoped: %v", err)
	}
	if len(unscoped) != 1 {
		t.Fatalf("unscoped read: want=1 got=%d", len(unscoped))
	}

	if err := topicRepo.HardDeleteByRoadmapIDs(context.Background(), nil, []uuid.UUID{roadmap.ID}); err != nil {
		t.Fatalf("hard delete: %v", err)
	}
	unscoped, err = topicRepo.GetByRoadmapIDsUnscoped(context.Background(), nil, []uuid.UUID{roadmap.ID})
	if err != nil {
		t.Fatalf("load unscoped after hard delete: %v", err)
	}
	if len(unscoped) != 0 {
		t.Fatalf("hard delete left rows: %+v", unscoped)
	}
}
