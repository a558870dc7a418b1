package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func newTopicServiceFixture(t *testing.T) (*generationFixture, TopicService) {
	t.Helper()
	f := newGenerationFixture(t, &fakeGeminiClient{})
	svc := NewTopicService(f.db, testLogger(t), f.roadmapRepo, f.topicRepo, f.taskRepo)
	return f, svc
}

func TestCreateTopicWithTasks(t *testing.T) {
	f, svc := newTopicServiceFixture(t)
	user := f.createUser(t)
	shell := createShellRoadmap(t, f, user.ID)

	topic, err := svc.CreateTopic(context.Background(), nil, TopicInput{
		RoadmapID:   shell.ID,
		Title:       "Testing",
		Description: "Unit and integration testing",
		Position:    2,
		Tasks: []TaskInput{
			{Title: "Write a table test", Description: "Cover the parser"},
			{Title: "Add CI", Description: "Run tests on push"},
		},
	})
	if err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	if topic.TotalTasks != 2 || len(topic.Tasks) != 2 {
		t.Fatalf("task counts: total=%d loaded=%d", topic.TotalTasks, len(topic.Tasks))
	}
	if topic.Tasks[0].Position != 1 || topic.Tasks[1].Position != 2 {
		t.Fatalf("task positions: %d, %d", topic.Tasks[0].Position, topic.Tasks[1].Position)
	}
}

func TestCreateTopicMissingRoadmap(t *testing.T) {
	_, svc := newTopicServiceFixture(t)

	_, err := svc.CreateTopic(context.Background(), nil, TopicInput{
		RoadmapID: uuid.New(),
		Title:     "Testing",
	})
	if !errors.Is(err, ErrRoadmapNotFound) {
		t.Fatalf("want ErrRoadmapNotFound, got %v", err)
	}
}

func TestSetTaskCompletionRollsUpCounter(t *testing.T) {
	f, svc := newTopicServiceFixture(t)
	user := f.createUser(t)
	shell := createShellRoadmap(t, f, user.ID)

	topic, err := svc.CreateTopic(context.Background(), nil, TopicInput{
		RoadmapID: shell.ID,
		Title:     "Version Control",
		Position:  1,
		Tasks: []TaskInput{
			{Title: "Init repo"},
			{Title: "First commit"},
		},
	})
	if err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	taskID := topic.Tasks[0].ID

	completedTasks := func() int {
		t.Helper()
		topics, err := f.topicRepo.GetByIDs(context.Background(), nil, []uuid.UUID{topic.ID})
		if err != nil || len(topics) == 0 {
			t.Fatalf("reload topic: %v", err)
		}
		return topics[0].CompletedTasks
	}

	task, err := svc.SetTaskCompletion(context.Background(), taskID, true)
	if err != nil {
		t.Fatalf("complete task: %v", err)
	}
	if !task.Completed {
		t.Fatalf("task not marked completed")
	}
	if got := completedTasks(); got != 1 {
		t.Fatalf("completed_tasks after complete: want=1 got=%d", got)
	}

	// Repeating the same state is a no-op, not a double count.
	if _, err := svc.SetTaskCompletion(context.Background(), taskID, true); err != nil {
		t.Fatalf("repeat complete: %v", err)
	}
	if got := completedTasks(); got != 1 {
		t.Fatalf("completed_tasks after repeat: want=1 got=%d", got)
	}

	if _, err := svc.SetTaskCompletion(context.Background(), taskID, false); err != nil {
		t.Fatalf("uncomplete task: %v", err)
	}
	if got := completedTasks(); got != 0 {
		t.Fatalf("completed_tasks after uncomplete: want=0 got=%d", got)
	}
}

func TestSetTaskCompletionMissingTask(t *testing.T) {
	_, svc := newTopicServiceFixture(t)

	_, err := svc.SetTaskCompletion(context.Background(), uuid.New(), true)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("want ErrTaskNotFound, got %v", err)
	}
}

func TestSoftDeleteTopicHidesFromReads(t *testing.T) {
	f, svc := newTopicServiceFixture(t)
	user := f.createUser(t)
	shell := createShellRoadmap(t, f, user.ID)

	topic, err := svc.CreateTopic(context.Background(), nil, TopicInput{
		RoadmapID: shell.ID,
		Title:     "Networking",
		Position:  1,
	})
	if err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}

	if err := svc.SoftDeleteTopic(context.Background(), nil, topic.ID); err != nil {
		t.Fatalf("SoftDeleteTopic: %v", err)
	}
	visible, err := f.topicRepo.GetByRoadmapIDs(context.Background(), nil, []uuid.UUID{shell.ID})
	if err != nil {
		t.Fatalf("load topics: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("soft-deleted topic still visible: %+v", visible)
	}

	unscoped, err := f.topicRepo.GetByRoadmapIDsUnscoped(context.Background(), nil, []uuid.UUID{shell.ID})
	if err != nil {
		t.Fatalf("load topics unscoped: %v", err)
	}
	if len(unscoped) != 1 {
		t.Fatalf("soft-deleted topic missing from unscoped read: %+v", unscoped)
	}
}
