package controllers

import (
	"testing"

	"github.com/hustudent/backend/models"
)

func TestScoreAttempt(t *testing.T) {
	questions := []models.QuizQuestion{
		{Prompt: "q1", Choices: []string{"a", "b", "c"}, CorrectIndex: 1},
		{Prompt: "q2", Choices: []string{"a", "b"}, CorrectIndex: 0},
		{Prompt: "q3", Choices: []string{"a", "b", "c", "d"}, CorrectIndex: 3},
	}

	tests := []struct {
		name    string
		answers []int
		want    int
	}{
		{"all correct", []int{1, 0, 3}, 3},
		{"all wrong", []int{0, 1, 0}, 0},
		{"partial", []int{1, 1, 3}, 2},
		{"skipped marked -1", []int{-1, 0, -1}, 1},
		{"out of range never counts", []int{5, 0, 99}, 1},
		{"short answer list", []int{1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreAttempt(questions, tt.answers); got != tt.want {
				t.Errorf("scoreAttempt(%v) = %d, want %d", tt.answers, got, tt.want)
			}
		})
	}
}
