package services

import (
	"strings"
	"testing"
)

const sampleResponse = `{"roadmap":{"topics":[{"title":"Version Control","description":"Track changes","tasks":[{"title":"Init repo","description":"Create a repository","order":1}]}],"courses":[{"title":"Git Complete","description":"All of git","instructors":"Jason Taylor","courseLink":"https://example.com/git"}]}}`

func TestParseRoadmapContentDirectJSON(t *testing.T) {
	content, err := ParseRoadmapContent(sampleResponse)
	if err != nil {
		t.Fatalf("ParseRoadmapContent: %v", err)
	}
	if len(content.Topics) != 1 {
		t.Fatalf("topics: want=1 got=%d", len(content.Topics))
	}
	if content.Topics[0].Title != "Version Control" {
		t.Fatalf("topic title: want=%q got=%q", "Version Control", content.Topics[0].Title)
	}
	if len(content.Topics[0].Tasks) != 1 || content.Topics[0].Tasks[0].Title != "Init repo" {
		t.Fatalf("unexpected tasks: %+v", content.Topics[0].Tasks)
	}
	if len(content.Courses) != 1 || content.Courses[0].CourseLink != "https://example.com/git" {
		t.Fatalf("unexpected courses: %+v", content.Courses)
	}
}

func TestParseRoadmapContentBraceFallback(t *testing.T) {
	wrapped := "Sure! Here is your roadmap:\n```json\n" + sampleResponse + "\n```\nGood luck!"
	content, err := ParseRoadmapContent(wrapped)
	if err != nil {
		t.Fatalf("ParseRoadmapContent: %v", err)
	}
	if len(content.Topics) != 1 || len(content.Courses) != 1 {
		t.Fatalf("fallback parse: topics=%d courses=%d", len(content.Topics), len(content.Courses))
	}
}

func TestParseRoadmapContentNoJSON(t *testing.T) {
	_, err := ParseRoadmapContent("I'm sorry, I can't produce a roadmap right now.")
	if err == nil {
		t.Fatalf("expected error for response without JSON")
	}
	if !strings.Contains(err.Error(), "no JSON object") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseRoadmapContentTopicsNotArray(t *testing.T) {
	_, err := ParseRoadmapContent(`{"roadmap":{"topics":{"title":"x"},"courses":[]}}`)
	if err == nil {
		t.Fatalf("expected error when topics is not an array")
	}
	if !strings.Contains(err.Error(), "roadmap.topics") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseRoadmapContentMissingCourses(t *testing.T) {
	_, err := ParseRoadmapContent(`{"roadmap":{"topics":[]}}`)
	if err == nil {
		t.Fatalf("expected error when courses is missing")
	}
	if !strings.Contains(err.Error(), "roadmap.courses") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRoadmapPromptMentionsRole(t *testing.T) {
	p := RoadmapPrompt("Software Engineer")
	if !strings.Contains(p, "Software Engineer") {
		t.Fatalf("prompt does not mention role: %s", p)
	}
	if !strings.Contains(p, `"courseLink"`) {
		t.Fatalf("prompt does not pin the JSON contract: %s", p)
	}
}
