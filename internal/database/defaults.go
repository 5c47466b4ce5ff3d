package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/catalog/internal/content"
	"github.com/jask/catalog/internal/database/repository"
)

// SampleID derives the stable id of a bundled sample.
func SampleID(v content.Variant, slug string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("sample:"+string(v)+":"+slug)).String()
}

// SeedDefaults adds one sample item per variant when the catalog is empty.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewContentRepo(db)
	counts, err := repo.Counts(ctx)
	if err != nil {
		return err
	}
	for _, n := range counts {
		if n > 0 {
			return nil
		}
	}
	return repo.Upsert(ctx, samples()...)
}

func samples() []content.Item {
	now := Now()
	return []content.Item{
		&content.Prompt{
			Meta: content.Meta{
				ID:          SampleID(content.VariantPrompt, "code-review"),
				Title:       "Code review checklist",
				Description: "Ask for a focused review of a diff with concrete findings.",
				Body:        "Review the following change. List correctness issues first, then style.",
				UpdatedAt:   now,
			},
			Category: "review",
			Tags:     []string{"git", "quality"},
		},
		&content.Agent{
			Meta: content.Meta{
				ID:          SampleID(content.VariantAgent, "test-writer"),
				Title:       "Test writer",
				Description: "Writes table driven tests for the package in focus.",
				UpdatedAt:   now,
			},
			Model: "sonnet",
			Tools: []string{"read", "write", "shell"},
		},
		&content.Power{
			Meta: content.Meta{
				ID:          SampleID(content.VariantPower, "sqlite"),
				Title:       "sqlite",
				Description: "Query and inspect local sqlite databases.",
				UpdatedAt:   now,
			},
			DisplayName: "SQLite Explorer",
			Keywords:    []string{"database", "sql"},
		},
		&content.Hook{
			Meta: content.Meta{
				ID:          SampleID(content.VariantHook, "lint-on-save"),
				Title:       "Lint on save",
				Description: "Runs the linter whenever a Go file is edited.",
				UpdatedAt:   now,
			},
			Trigger:  "fileEdited",
			Patterns: []string{"**/*.go"},
			Action:   "Run golangci-lint on the edited package and report new findings.",
		},
		&content.SteeringDoc{
			Meta: content.Meta{
				ID:          SampleID(content.VariantSteering, "go-style"),
				Title:       "Go style",
				Description: "House rules for Go code in this workspace.",
				UpdatedAt:   now,
			},
			Inclusion: "fileMatch",
			FileMatch: "**/*.go",
		},
	}
}
