// Command sample generates one assignment from a fixture job description and
// prints the result. Useful for smoke-testing provider credentials.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/noah-isme/takehome-go-api/internal/config"
	"github.com/noah-isme/takehome-go-api/internal/models"
	"github.com/noah-isme/takehome-go-api/internal/service"
	"github.com/noah-isme/takehome-go-api/pkg/ai"
)

const sampleJobDescription = `Senior Backend Engineer - Fintech Platform

We're building the next generation of payroll infrastructure for SMBs across Europe.
Our platform processes EUR 50M+ in monthly payroll transactions and needs to handle complex
tax calculations, SEPA integrations, and real-time reporting.

As a Senior Backend Engineer, you'll:
- Design and build scalable APIs for payroll processing
- Implement complex tax calculation engines
- Integrate with banking APIs (SEPA, instant payments)
- Build admin tools for HR teams to manage payroll
- Ensure system reliability and data accuracy
- Mentor junior engineers on architecture and best practices

Tech Stack:
- Python, FastAPI, PostgreSQL
- Redis for caching
- Celery for background jobs
- Docker, Kubernetes
- AWS (ECS, RDS, ElastiCache)

Requirements:
- 5+ years backend development experience
- Strong API design skills
- Experience with financial systems or regulated industries`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	generator, err := ai.NewOpenAIGenerator(ai.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		BaseURL:     cfg.OpenAIBaseURL,
		MaxTokens:   cfg.OpenAIMaxTokens,
		Temperature: float32(cfg.OpenAITemperature),
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("failed to create generator: %v", err)
	}

	svc := service.NewAssignmentService(generator, logger)

	input := models.AssignmentInput{
		JobTitle:         "Senior Backend Engineer",
		JobDescription:   sampleJobDescription,
		TechStack:        []string{"Python", "FastAPI", "PostgreSQL", "Redis"},
		TimeBudgetHours:  4.0,
		SeniorityLevel:   models.SenioritySenior,
		MustEvaluate:     []string{"API design", "error handling", "data modeling"},
		CompanyContext:   "Fintech startup processing payroll for 10k+ companies",
		SubmissionFormat: models.SubmissionFormatGitHub,
	}

	fmt.Printf("Job Title: %s\n", input.JobTitle)
	fmt.Printf("Seniority: %s\n", input.SeniorityLevel)
	fmt.Printf("Time Budget: %g hours\n", input.TimeBudgetHours)
	fmt.Println("Generating assignment...")

	assignment, err := svc.Generate(context.Background(), input)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	fmt.Printf("\nAssignment ID: %s\n", assignment.AssignmentID)
	fmt.Printf("Difficulty: %s\n", assignment.EstimatedDifficulty)
	fmt.Printf("Generated at: %s\n\n", assignment.GeneratedAt.Format("2006-01-02 15:04:05"))

	encoded, err := json.MarshalIndent(assignment, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode assignment: %v", err)
	}
	fmt.Println(string(encoded))

	if len(assignment.ScopeWarnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, warning := range assignment.ScopeWarnings {
			fmt.Printf("  - %s\n", warning)
		}
	}
}
