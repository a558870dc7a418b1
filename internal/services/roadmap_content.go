package services

import (
  "encoding/json"
  "fmt"
  "regexp"
  "strings"
)

// GeneratedTask / GeneratedTopic / GeneratedCourse mirror the JSON contract
// the prompt asks the model to honor. Field shapes beyond the two top-level
// arrays are trusted as-is from the model.
type GeneratedTask struct {
  Title       string `json:"title"`
  Description string `json:"description"`
  Order       int    `json:"order"`
}

type GeneratedTopic struct {
  Title       string          `json:"title"`
  Description string          `json:"description"`
  Tasks       []GeneratedTask `json:"tasks"`
}

type GeneratedCourse struct {
  Title       string `json:"title"`
  Description string `json:"description"`
  Instructors string `json:"instructors"`
  CourseLink  string `json:"courseLink"`
}

type RoadmapContent struct {
  Topics  []GeneratedTopic  `json:"topics"`
  Courses []GeneratedCourse `json:"courses"`
}

type roadmapEnvelope struct {
  Roadmap struct {
    Topics  json.RawMessage `json:"topics"`
    Courses json.RawMessage `json:"courses"`
  } `json:"roadmap"`
}

// RoadmapPrompt is the single fixed prompt for a generation cycle. Topics
// and courses come back together so both writers work off one parse.
func RoadmapPrompt(role string) string {
  return fmt.Sprintf(`You are a career coach building a learning roadmap for someone becoming a %s.
Respond with a single JSON object and nothing else, in exactly this shape:
{
  "roadmap": {
    "topics": [
      {
        "title": "string",
        "description": "string",
        "tasks": [
          { "title": "string", "description": "string", "order": 1 }
        ]
      }
    ],
    "courses": [
      {
        "title": "string",
        "description": "string",
        "instructors": "string",
        "courseLink": "https://..."
      }
    ]
  }
}
Produce 5-8 topics ordered from fundamentals to advanced, 3-6 tasks per topic, and 4-8 real online courses with working links. Do not wrap the JSON in markdown fences or add commentary.`, role)
}

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// ParseRoadmapContent extracts the roadmap object from raw model output.
// Direct parse first; when the model wraps the JSON in prose or fences, the
// first-to-last-brace substring is parsed instead.
func ParseRoadmapContent(raw string) (*RoadmapContent, error) {
  var env roadmapEnvelope
  if err := json.Unmarshal([]byte(raw), &env); err != nil {
    match := jsonObjectRe.FindString(raw)
    if match == "" {
      return nil, fmt.Errorf("no JSON object found in AI response")
    }
    if err := json.Unmarshal([]byte(match), &env); err != nil {
      return nil, fmt.Errorf("parse AI response: %w", err)
    }
  }

  topics, err := decodeArray[GeneratedTopic](env.Roadmap.Topics, "roadmap.topics")
  if err != nil {
    return nil, err
  }
  courses, err := decodeArray[GeneratedCourse](env.Roadmap.Courses, "roadmap.courses")
  if err != nil {
    return nil, err
  }
  return &RoadmapContent{Topics: topics, Courses: courses}, nil
}

func decodeArray[T any](raw json.RawMessage, field string) ([]T, error) {
  trimmed := strings.TrimSpace(string(raw))
  if trimmed == "" || trimmed == "null" {
    return nil, fmt.Errorf("AI response missing %s array", field)
  }
  if !strings.HasPrefix(trimmed, "[") {
    return nil, fmt.Errorf("AI response field %s is not an array", field)
  }
  var out []T
  if err := json.Unmarshal(raw, &out); err != nil {
    return nil, fmt.Errorf("parse %s: %w", field, err)
  }
  return out, nil
}
